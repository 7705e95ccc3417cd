package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/gitlabteam/internal/adapter/gitlab"
	"github.com/m-zajac/gitlabteam/internal/app"
	"github.com/m-zajac/gitlabteam/internal/limiter"
	"github.com/spf13/cobra"
)

const (
	tokenEnv       = "GITLAB_TOKEN"
	defaultAPIAddr = "https://code.swecha.org/api/v4"
	sinceLayout    = "2006-01-02"
)

type analyzeOptions struct {
	group       string
	since       string
	maxProjects int
	apiAddr     string
	outDir      string
	timeout     time.Duration
	delay       time.Duration
	rateLimit   float64
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyzes commits of a GitLab group and outputs team overview as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			return runAnalyze(ctx, cmd, opts, os.Getenv(tokenEnv))
		},
	}

	cmd.Flags().StringVarP(&opts.group, "group", "g", "", "GitLab group path (required)")
	cmd.Flags().StringVar(&opts.since, "since", "", "Only commits after this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.maxProjects, "max-projects", 20, "Maximum number of group projects to analyze")
	cmd.Flags().StringVar(&opts.apiAddr, "api", defaultAPIAddr, "GitLab api v4 address")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "Directory for member summary files")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Timeout for a single api call")
	cmd.Flags().DurationVar(&opts.delay, "delay", 200*time.Millisecond, "Pause after each project")
	cmd.Flags().Float64Var(&opts.rateLimit, "rate-limit", 0, "Max api calls per second, 0 means unlimited")
	_ = cmd.MarkFlagRequired("group")

	return cmd
}

func runAnalyze(ctx context.Context, cmd *cobra.Command, opts analyzeOptions, token string) error {
	if token == "" {
		return fmt.Errorf("%s environment variable is not set", tokenEnv)
	}
	if opts.maxProjects < 1 || opts.maxProjects > 100 {
		return errors.New("--max-projects must be between 1 and 100")
	}

	req := app.Request{
		Group:       opts.group,
		Token:       token,
		MaxProjects: opts.maxProjects,
	}
	if opts.since != "" {
		since, err := time.Parse(sinceLayout, opts.since)
		if err != nil {
			return fmt.Errorf("invalid --since date, use YYYY-MM-DD: %w", err)
		}
		req.Since = &since
	}

	l := newLogger(cmd)
	client := gitlab.NewClient(
		limiter.NewHTTPDoer(&http.Client{}, opts.rateLimit),
		opts.apiAddr,
		opts.timeout,
	)
	service := app.NewService(client, opts.delay, l.WithField("component", "service"))

	analysis, err := service.Analyze(ctx, req)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	for _, w := range analysis.Warnings {
		fmt.Fprintln(stderr, w.Error())
	}

	if err := writeReport(cmd.OutOrStdout(), analysis); err != nil {
		return err
	}

	if opts.outDir != "" {
		files, err := writeSummaries(opts.outDir, analysis, time.Now())
		if err != nil {
			return err
		}
		for _, f := range files {
			l.Debugf("summary written to %s", f)
		}
	}

	return nil
}

type report struct {
	Group                  string         `json:"group"`
	Commits                int            `json:"commits"`
	Members                int            `json:"members"`
	ActiveProjects         int            `json:"activeProjects"`
	AvgCommitsPerMember    float64        `json:"avgCommitsPerMember"`
	MedianCommitsPerMember float64        `json:"medianCommitsPerMember"`
	Contributions          []reportMember `json:"contributions"`
	Categories             map[string]int `json:"categories"`
}

type reportMember struct {
	Name       string         `json:"name"`
	Commits    int            `json:"commits"`
	Projects   int            `json:"projects"`
	Categories map[string]int `json:"categories"`
}

func newReport(a *app.Analysis) report {
	o := app.Overview(a)
	r := report{
		Group:                  a.Group,
		Commits:                o.TotalCommits,
		Members:                o.Members,
		ActiveProjects:         o.ActiveProjects,
		AvgCommitsPerMember:    o.AvgCommitsPerMember,
		MedianCommitsPerMember: o.MedianCommitsPerMember,
		Contributions:          make([]reportMember, 0, a.Len()),
		Categories:             categoriesMap(o.Categories),
	}
	for _, m := range a.Members() {
		r.Contributions = append(r.Contributions, reportMember{
			Name:       m.Name,
			Commits:    m.TotalCommits,
			Projects:   m.Projects,
			Categories: categoriesMap(m.Categories),
		})
	}

	return r
}

func categoriesMap(cc app.CategoryCounts) map[string]int {
	m := make(map[string]int, len(cc))
	for _, c := range cc {
		m[string(c.Category)] = c.Count
	}
	return m
}

func writeReport(w io.Writer, a *app.Analysis) error {
	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(newReport(a), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// writeSummaries writes each member's markdown summary into dir and returns created file paths.
func writeSummaries(dir string, a *app.Analysis, now time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	files := make([]string, 0, a.Len())
	for _, m := range a.Members() {
		path := filepath.Join(dir, filepath.Base(app.SummaryFileName(m.Name, now)))
		if err := os.WriteFile(path, []byte(m.Summary), 0o644); err != nil {
			return files, fmt.Errorf("writing summary of %s: %w", m.Name, err)
		}
		files = append(files, path)
	}

	return files, nil
}
