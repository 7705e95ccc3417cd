package app

import (
	"github.com/montanaflynn/stats"
)

// MemberContribution is a per-member row of the team overview.
type MemberContribution struct {
	Member   string
	Commits  int
	Projects int
}

// TeamOverview holds team-wide numbers.
type TeamOverview struct {
	Members                int
	TotalCommits           int
	ActiveProjects         int
	AvgCommitsPerMember    float64
	MedianCommitsPerMember float64
	Contributions          []MemberContribution
	Categories             CategoryCounts
}

// Overview computes team-wide numbers for given analysis.
func Overview(a *Analysis) TeamOverview {
	o := TeamOverview{
		Members:       a.Len(),
		Contributions: make([]MemberContribution, 0, a.Len()),
	}

	projects := make(map[string]struct{})
	totals := make([]float64, 0, a.Len())
	for _, m := range a.Members() {
		o.TotalCommits += m.TotalCommits
		totals = append(totals, float64(m.TotalCommits))
		o.Contributions = append(o.Contributions, MemberContribution{
			Member:   m.Name,
			Commits:  m.TotalCommits,
			Projects: m.Projects,
		})
		for _, c := range m.Categories {
			o.Categories = o.Categories.Add(c.Category, c.Count)
		}
		for _, c := range m.Commits {
			p := c.ProjectName
			if p == "" {
				p = unknownName
			}
			projects[p] = struct{}{}
		}
	}
	o.ActiveProjects = len(projects)

	// Both return an error only on empty input.
	if mean, err := stats.Mean(totals); err == nil {
		o.AvgCommitsPerMember = mean
	}
	if median, err := stats.Median(totals); err == nil {
		o.MedianCommitsPerMember = median
	}

	return o
}
