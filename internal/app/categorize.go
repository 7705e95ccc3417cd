package app

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Category is a coarse commit classification label.
type Category string

// Commit categories.
const (
	CategoryBugFix        Category = "Bug Fix"
	CategoryFeature       Category = "Feature"
	CategoryRefactor      Category = "Refactor"
	CategoryDocumentation Category = "Documentation"
	CategoryTests         Category = "Tests"
	CategoryOther         Category = "Other"
)

// Categories lists all categories in matching order.
var Categories = []Category{
	CategoryBugFix,
	CategoryFeature,
	CategoryRefactor,
	CategoryDocumentation,
	CategoryTests,
	CategoryOther,
}

type categoryRule struct {
	pattern  *regexp.Regexp
	category Category
}

// Order matters, first matching rule wins.
var categoryRules = []categoryRule{
	{regexp.MustCompile(`(?i)\bfix(es|ed)?\b`), CategoryBugFix},
	{regexp.MustCompile(`(?i)\bfeature\b|\badd(ed)?\b`), CategoryFeature},
	{regexp.MustCompile(`(?i)\brefactor(ed)?\b`), CategoryRefactor},
	{regexp.MustCompile(`(?i)\bdoc(s|umentation)?\b`), CategoryDocumentation},
	{regexp.MustCompile(`(?i)\btest(s|ing)?\b`), CategoryTests},
}

// matches reports whether the pattern occurs as a whole word.
// RE2's \b only knows ascii word characters, so matches next to other
// unicode letters or digits are rejected here.
func (r categoryRule) matches(message string) bool {
	for _, loc := range r.pattern.FindAllStringIndex(message, -1) {
		before, _ := utf8.DecodeLastRuneInString(message[:loc[0]])
		after, _ := utf8.DecodeRuneInString(message[loc[1]:])
		if !isWordRune(before) && !isWordRune(after) {
			return true
		}
	}

	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Categorize classifies commit message by keywords.
func Categorize(message string) Category {
	for _, r := range categoryRules {
		if r.matches(message) {
			return r.category
		}
	}

	return CategoryOther
}
