package app

import (
	"fmt"
	"strings"
	"time"
)

const unknownName = "Unknown"

// CategoryCount is a number of commits in a category.
type CategoryCount struct {
	Category Category
	Count    int
}

// CategoryCounts keeps counters in the order categories were first seen.
type CategoryCounts []CategoryCount

// Add increments counter for given category.
func (cc CategoryCounts) Add(c Category, n int) CategoryCounts {
	for i := range cc {
		if cc[i].Category == c {
			cc[i].Count += n
			return cc
		}
	}

	return append(cc, CategoryCount{Category: c, Count: n})
}

// Count returns counter value for given category.
func (cc CategoryCounts) Count(c Category) int {
	for _, el := range cc {
		if el.Category == c {
			return el.Count
		}
	}
	return 0
}

// Total returns sum of all counters.
func (cc CategoryCounts) Total() int {
	var total int
	for _, el := range cc {
		total += el.Count
	}
	return total
}

// MemberRecord is an aggregated view of one author's commits.
type MemberRecord struct {
	Name         string
	Commits      []Commit
	TotalCommits int
	Projects     int
	Categories   CategoryCounts
	Summary      string
}

// Analysis is the result of a single analysis run.
type Analysis struct {
	Group       string
	Commits     []Commit
	Warnings    []ProjectCommitsError
	GeneratedAt time.Time

	members []*MemberRecord
	byName  map[string]*MemberRecord
}

// Members returns member records in the order authors were first seen.
func (a *Analysis) Members() []*MemberRecord {
	return a.members
}

// Member returns record for given author name.
func (a *Analysis) Member(name string) (*MemberRecord, bool) {
	m, ok := a.byName[name]
	return m, ok
}

// Len returns number of members.
func (a *Analysis) Len() int {
	return len(a.members)
}

// Aggregate groups commits by author.
// Every commit lands in exactly one member's record.
func Aggregate(commits []Commit) *Analysis {
	a := Analysis{
		Commits:     commits,
		GeneratedAt: time.Now(),
		byName:      make(map[string]*MemberRecord),
	}
	projectSets := make(map[string]map[string]struct{})

	for _, c := range commits {
		name := c.AuthorName
		if name == "" {
			name = unknownName
		}
		m, ok := a.byName[name]
		if !ok {
			m = &MemberRecord{Name: name}
			a.byName[name] = m
			a.members = append(a.members, m)
			projectSets[name] = make(map[string]struct{})
		}

		m.Commits = append(m.Commits, c)
		m.TotalCommits++

		project := c.ProjectName
		if project == "" {
			project = unknownName
		}
		projectSets[name][project] = struct{}{}

		m.Categories = m.Categories.Add(Categorize(c.Text()), 1)
	}

	for _, m := range a.members {
		m.Projects = len(projectSets[m.Name])
		m.Summary = memberSummary(m)
	}

	return &a
}

func memberSummary(m *MemberRecord) string {
	lines := []string{
		"## " + m.Name,
		fmt.Sprintf("- Total Commits: **%d**", m.TotalCommits),
		fmt.Sprintf("- Projects Contributed To: **%d**", m.Projects),
		"- Commit Categories:",
	}
	for _, c := range m.Categories {
		lines = append(lines, fmt.Sprintf("  - %s: %d", c.Category, c.Count))
	}

	return strings.Join(lines, "\n")
}

// SummaryFileName returns file name for exported member summary.
func SummaryFileName(member string, now time.Time) string {
	return fmt.Sprintf(
		"%s_contribution_summary_%s.md",
		strings.ReplaceAll(member, " ", "_"),
		now.Format("20060102"),
	)
}

// CommitDetail is a single row of member's commits table.
type CommitDetail struct {
	Date     string
	Project  string
	Message  string
	Category Category
}

// CommitDetails returns member's commits as table rows.
func CommitDetails(m *MemberRecord) []CommitDetail {
	rows := make([]CommitDetail, 0, len(m.Commits))
	for _, c := range m.Commits {
		date := c.CreatedAt
		if len(date) > 10 {
			date = date[:10]
		}
		project := c.ProjectName
		if project == "" {
			project = unknownName
		}
		message := c.Text()
		if message == "" {
			message = "No message"
		}

		rows = append(rows, CommitDetail{
			Date:     date,
			Project:  project,
			Message:  message,
			Category: Categorize(c.Text()),
		})
	}

	return rows
}
