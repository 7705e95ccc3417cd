package http

import (
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/gitlabteam/internal/app"
	"github.com/sirupsen/logrus"
)

const (
	defaultHandlerMaxProjectsValue = 20
	maxHandlerMaxProjectsValue     = 100

	tokenHeader = "PRIVATE-TOKEN"
	sinceLayout = "2006-01-02"
)

var errNoAnalysis = errors.New("no analysis available, run /analyze first")

type analyzeResponse struct {
	Group    string   `json:"group"`
	Commits  int      `json:"commits"`
	Members  int      `json:"members"`
	Warnings []string `json:"warnings"`
}

func newAnalyzeResponse(a *app.Analysis) analyzeResponse {
	warnings := make([]string, 0, len(a.Warnings))
	for _, w := range a.Warnings {
		warnings = append(warnings, w.Error())
	}

	return analyzeResponse{
		Group:    a.Group,
		Commits:  len(a.Commits),
		Members:  a.Len(),
		Warnings: warnings,
	}
}

type categoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

func newCategoryCounts(cc app.CategoryCounts) []categoryCount {
	counts := make([]categoryCount, 0, len(cc))
	for _, c := range cc {
		counts = append(counts, categoryCount{
			Category: string(c.Category),
			Count:    c.Count,
		})
	}
	return counts
}

type memberContribution struct {
	Member   string `json:"member"`
	Commits  int    `json:"commits"`
	Projects int    `json:"projects"`
}

type overviewResponse struct {
	Members                int                  `json:"members"`
	TotalCommits           int                  `json:"totalCommits"`
	ActiveProjects         int                  `json:"activeProjects"`
	AvgCommitsPerMember    float64              `json:"avgCommitsPerMember"`
	MedianCommitsPerMember float64              `json:"medianCommitsPerMember"`
	Contributions          []memberContribution `json:"contributions"`
	Categories             []categoryCount      `json:"categories"`
}

func newOverviewResponse(o app.TeamOverview) overviewResponse {
	contributions := make([]memberContribution, 0, len(o.Contributions))
	for _, c := range o.Contributions {
		contributions = append(contributions, memberContribution{
			Member:   c.Member,
			Commits:  c.Commits,
			Projects: c.Projects,
		})
	}

	return overviewResponse{
		Members:                o.Members,
		TotalCommits:           o.TotalCommits,
		ActiveProjects:         o.ActiveProjects,
		AvgCommitsPerMember:    o.AvgCommitsPerMember,
		MedianCommitsPerMember: o.MedianCommitsPerMember,
		Contributions:          contributions,
		Categories:             newCategoryCounts(o.Categories),
	}
}

type member struct {
	Name       string          `json:"name"`
	Commits    int             `json:"commits"`
	Projects   int             `json:"projects"`
	Categories []categoryCount `json:"categories"`
}

func newMembersResponse(a *app.Analysis) []member {
	members := make([]member, 0, a.Len())
	for _, m := range a.Members() {
		members = append(members, member{
			Name:       m.Name,
			Commits:    m.TotalCommits,
			Projects:   m.Projects,
			Categories: newCategoryCounts(m.Categories),
		})
	}
	return members
}

type commitDetail struct {
	Date     string `json:"date"`
	Project  string `json:"project"`
	Message  string `json:"message"`
	Category string `json:"category"`
}

func newCommitsResponse(m *app.MemberRecord) []commitDetail {
	rows := app.CommitDetails(m)
	commits := make([]commitDetail, 0, len(rows))
	for _, r := range rows {
		commits = append(commits, commitDetail{
			Date:     r.Date,
			Project:  r.Project,
			Message:  r.Message,
			Category: string(r.Category),
		})
	}
	return commits
}

// NewAnalyzeHandler creates handlerfunc running new analysis.
// Group and filters are taken from url query, token from the PRIVATE-TOKEN header.
func NewAnalyzeHandler(
	service Service,
	state *app.AnalysisState,
	l logrus.FieldLogger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		req := app.Request{
			Group:       r.URL.Query().Get("group"),
			Token:       r.Header.Get(tokenHeader),
			MaxProjects: getIntParam(r, "maxProjects", defaultHandlerMaxProjectsValue, maxHandlerMaxProjectsValue),
		}
		if s := r.URL.Query().Get("since"); s != "" {
			since, err := time.Parse(sinceLayout, s)
			if err != nil {
				http.Error(w, "since must be a date in YYYY-MM-DD format", http.StatusBadRequest)
				return
			}
			req.Since = &since
		}

		analysis, err := state.Run(r.Context(), service, req)
		if err != nil {
			writeError(w, err, l)
			return
		}

		writeJSON(w, newAnalyzeResponse(analysis))
	}
}

// NewOverviewHandler creates handlerfunc returning team overview of current analysis.
func NewOverviewHandler(state *app.AnalysisState, l logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a := state.Current()
		if a == nil {
			writeError(w, errNoAnalysis, l)
			return
		}

		writeJSON(w, newOverviewResponse(app.Overview(a)))
	}
}

// NewMembersHandler creates handlerfunc listing members of current analysis.
func NewMembersHandler(state *app.AnalysisState, l logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a := state.Current()
		if a == nil {
			writeError(w, errNoAnalysis, l)
			return
		}

		writeJSON(w, newMembersResponse(a))
	}
}

// NewMemberHandler creates handlerfunc returning member's summary or commits.
// getPath returns "{name}/summary" or "{name}/commits".
func NewMemberHandler(
	getPath func(*http.Request) string,
	state *app.AnalysisState,
	now func() time.Time,
	l logrus.FieldLogger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a := state.Current()
		if a == nil {
			writeError(w, errNoAnalysis, l)
			return
		}

		path := getPath(r)
		i := strings.LastIndex(path, "/")
		if i <= 0 {
			http.NotFound(w, r)
			return
		}
		name, view := path[:i], path[i+1:]

		m, ok := a.Member(name)
		if !ok {
			http.Error(w, "member not found", http.StatusNotFound)
			return
		}

		switch view {
		case "summary":
			disposition := mime.FormatMediaType("attachment", map[string]string{
				"filename": app.SummaryFileName(m.Name, now()),
			})
			w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
			w.Header().Set("Content-Disposition", disposition)
			_, _ = w.Write([]byte(m.Summary))
		case "commits":
			writeJSON(w, newCommitsResponse(m))
		default:
			http.NotFound(w, r)
		}
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-type", "application/json; charset=utf-8")
	_ = jsoniter.ConfigFastest.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error, l logrus.FieldLogger) {
	switch {
	case app.IsInvalidRequestError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case app.IsAuthError(err):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case app.IsProjectListError(err):
		http.Error(w, err.Error(), http.StatusBadGateway)
	case app.IsTooManyRequestsError(err):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	case errors.Is(err, app.ErrNoCommits), errors.Is(err, errNoAnalysis):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		l.Errorf("handler error: %v", err)
		http.Error(w, "", http.StatusInternalServerError)
	}
}

func getIntParam(r *http.Request, name string, defaultValue int, maxValue int) int {
	value := defaultValue
	if vs := r.URL.Query().Get(name); vs != "" {
		if v, err := strconv.Atoi(vs); err == nil && v > 0 && v <= maxValue {
			value = v
		}
	}

	return value
}
