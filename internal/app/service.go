package app

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	projectsPerPage = 50
	commitsPerPage  = 100
)

// GitlabClient returns details about gitlab groups, projects and commits.
// Every call is authenticated with given token.
type GitlabClient interface {
	CurrentUser(ctx context.Context, token string) (User, error)
	GroupProjects(ctx context.Context, token string, group string, page int, perPage int) ([]Project, error)
	ProjectCommits(ctx context.Context, token string, projectID int, page int, perPage int, since *time.Time) ([]Commit, error)
}

// Service is main apps entry point. Provides all app functionality
type Service struct {
	gitlabClient GitlabClient
	projectDelay time.Duration
	l            logrus.FieldLogger
}

// NewService creates new Service instance.
// projectDelay is a pause after fetching commits of each project.
func NewService(gitlabClient GitlabClient, projectDelay time.Duration, l logrus.FieldLogger) *Service {
	return &Service{
		gitlabClient: gitlabClient,
		projectDelay: projectDelay,
		l:            l,
	}
}

// Analyze validates the token, fetches all group commits and aggregates them by author.
func (s *Service) Analyze(ctx context.Context, req Request) (*Analysis, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.gitlabClient.CurrentUser(ctx, req.Token)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	if user.ID == 0 && user.Username == "" {
		return nil, &AuthError{Err: errors.New("empty user response")}
	}
	s.l.Infof("authenticated as %s", user.Username)

	commits, warnings, err := s.FetchAllCommits(ctx, req.Group, req.Token, req.Since, req.MaxProjects)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 {
		return nil, ErrNoCommits
	}
	s.l.Infof("found %d commits in group %s", len(commits), req.Group)

	a := Aggregate(commits)
	a.Group = req.Group
	a.Warnings = warnings
	s.l.Infof("analysis complete for %d team members", a.Len())

	return a, nil
}

// FetchAllCommits returns commits from up to maxProjects projects of the group.
//
// Failing to list projects aborts the fetch. Failing to fetch commits of a single
// project doesn't: commits fetched so far are kept, and the failure is returned
// in the warnings list.
func (s *Service) FetchAllCommits(
	ctx context.Context,
	group string,
	token string,
	since *time.Time,
	maxProjects int,
) ([]Commit, []ProjectCommitsError, error) {
	projects, err := s.groupProjects(ctx, group, token, maxProjects)
	if err != nil {
		return nil, nil, &ProjectListError{Group: group, Err: err}
	}
	s.l.Infof("fetching commits from %d projects of group %s", len(projects), group)

	var commits []Commit
	var warnings []ProjectCommitsError
	for _, p := range projects {
		pc, err := s.projectCommits(ctx, p, token, since)
		commits = append(commits, pc...)
		if err != nil {
			w := ProjectCommitsError{Project: p.PathWithNamespace, Err: err}
			s.l.Warn(w.Error())
			warnings = append(warnings, w)
		}

		time.Sleep(s.projectDelay)
	}

	return commits, warnings, nil
}

func (s *Service) groupProjects(ctx context.Context, group string, token string, maxProjects int) ([]Project, error) {
	var projects []Project
	for page := 1; ; page++ {
		data, err := s.gitlabClient.GroupProjects(ctx, token, group, page, projectsPerPage)
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			break
		}
		projects = append(projects, data...)
		if len(data) < projectsPerPage || len(projects) >= maxProjects {
			break
		}
	}

	if maxProjects >= 0 && len(projects) > maxProjects {
		projects = projects[:maxProjects]
	}

	return projects, nil
}

// projectCommits returns commits fetched before an error, together with that error.
func (s *Service) projectCommits(ctx context.Context, p Project, token string, since *time.Time) ([]Commit, error) {
	var commits []Commit
	for page := 1; ; page++ {
		data, err := s.gitlabClient.ProjectCommits(ctx, token, p.ID, page, commitsPerPage, since)
		if err != nil {
			return commits, err
		}
		if len(data) == 0 {
			break
		}
		for i := range data {
			data[i].ProjectName = p.PathWithNamespace
		}
		commits = append(commits, data...)
		if len(data) < commitsPerPage {
			break
		}
	}

	return commits, nil
}
