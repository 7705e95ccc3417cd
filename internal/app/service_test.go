package app_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/m-zajac/gitlabteam/internal/app"
	"github.com/m-zajac/gitlabteam/internal/app/mock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() logrus.FieldLogger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}

func makeProjects(firstID int, n int) []app.Project {
	ps := make([]app.Project, 0, n)
	for i := 0; i < n; i++ {
		id := firstID + i
		ps = append(ps, app.Project{
			ID:                id,
			PathWithNamespace: fmt.Sprintf("team/project-%d", id),
		})
	}
	return ps
}

func makeCommits(n int, author string) []app.Commit {
	cs := make([]app.Commit, 0, n)
	for i := 0; i < n; i++ {
		cs = append(cs, app.Commit{
			ID:         fmt.Sprintf("%s-%d", author, i),
			Title:      "update",
			AuthorName: author,
		})
	}
	return cs
}

func TestServiceFetchAllCommits(t *testing.T) {
	t.Parallel()

	since := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		setupMock    func(*mock.MockGitlabClient)
		since        *time.Time
		maxProjects  int
		wantCommits  []app.Commit
		wantWarnings []string
		wantErr      bool
	}{
		{
			name: "projects error from client",
			setupMock: func(m *mock.MockGitlabClient) {
				m.EXPECT().
					GroupProjects(gomock.Any(), "token", "team", 1, 50).
					Return(nil, errors.New("HTTP 404: {'message': '404 Group Not Found'}"))
			},
			maxProjects: 20,
			wantErr:     true,
		},
		{
			name: "empty group",
			setupMock: func(m *mock.MockGitlabClient) {
				m.EXPECT().
					GroupProjects(gomock.Any(), "token", "team", 1, 50).
					Return([]app.Project{}, nil)
			},
			maxProjects: 20,
			wantCommits: nil,
		},
		{
			name: "projects pagination stops after short page",
			setupMock: func(m *mock.MockGitlabClient) {
				gomock.InOrder(
					m.EXPECT().GroupProjects(gomock.Any(), "token", "team", 1, 50).Return(makeProjects(1, 50), nil),
					m.EXPECT().GroupProjects(gomock.Any(), "token", "team", 2, 50).Return(makeProjects(51, 50), nil),
					m.EXPECT().GroupProjects(gomock.Any(), "token", "team", 3, 50).Return(makeProjects(101, 30), nil),
				)
				m.EXPECT().
					ProjectCommits(gomock.Any(), "token", gomock.Any(), 1, 100, gomock.Any()).
					Return(nil, nil).
					Times(130)
			},
			maxProjects: 200,
			wantCommits: nil,
		},
		{
			name: "projects truncated to max projects",
			setupMock: func(m *mock.MockGitlabClient) {
				m.EXPECT().
					GroupProjects(gomock.Any(), "token", "team", 1, 50).
					Return(makeProjects(1, 25), nil)
				for id := 1; id <= 20; id++ {
					m.EXPECT().
						ProjectCommits(gomock.Any(), "token", id, 1, 100, gomock.Any()).
						Return(nil, nil)
				}
			},
			maxProjects: 20,
			wantCommits: nil,
		},
		{
			name: "projects pagination stops when max projects reached",
			setupMock: func(m *mock.MockGitlabClient) {
				m.EXPECT().
					GroupProjects(gomock.Any(), "token", "team", 1, 50).
					Return(makeProjects(1, 50), nil)
				m.EXPECT().
					ProjectCommits(gomock.Any(), "token", gomock.Any(), 1, 100, gomock.Any()).
					Return(nil, nil).
					Times(10)
			},
			maxProjects: 10,
			wantCommits: nil,
		},
		{
			name: "commits pagination, tagged with project name",
			setupMock: func(m *mock.MockGitlabClient) {
				m.EXPECT().
					GroupProjects(gomock.Any(), "token", "team", 1, 50).
					Return(makeProjects(7, 1), nil)
				gomock.InOrder(
					m.EXPECT().ProjectCommits(gomock.Any(), "token", 7, 1, 100, &since).Return(makeCommits(100, "alice"), nil),
					m.EXPECT().ProjectCommits(gomock.Any(), "token", 7, 2, 100, &since).Return(makeCommits(2, "bob"), nil),
				)
			},
			since:       &since,
			maxProjects: 20,
			wantCommits: func() []app.Commit {
				cs := append(makeCommits(100, "alice"), makeCommits(2, "bob")...)
				for i := range cs {
					cs[i].ProjectName = "team/project-7"
				}
				return cs
			}(),
		},
		{
			name: "commits error keeps partial results and continues",
			setupMock: func(m *mock.MockGitlabClient) {
				m.EXPECT().
					GroupProjects(gomock.Any(), "token", "team", 1, 50).
					Return(makeProjects(1, 2), nil)
				gomock.InOrder(
					m.EXPECT().ProjectCommits(gomock.Any(), "token", 1, 1, 100, gomock.Any()).Return(makeCommits(100, "alice"), nil),
					m.EXPECT().ProjectCommits(gomock.Any(), "token", 1, 2, 100, gomock.Any()).Return(nil, errors.New("HTTP 500: boom")),
					m.EXPECT().ProjectCommits(gomock.Any(), "token", 2, 1, 100, gomock.Any()).Return(makeCommits(1, "bob"), nil),
				)
			},
			maxProjects: 20,
			wantCommits: func() []app.Commit {
				cs := makeCommits(100, "alice")
				for i := range cs {
					cs[i].ProjectName = "team/project-1"
				}
				bob := makeCommits(1, "bob")
				bob[0].ProjectName = "team/project-2"
				return append(cs, bob...)
			}(),
			wantWarnings: []string{
				"Error fetching commits for project team/project-1: HTTP 500: boom",
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			gitlabCli := mock.NewMockGitlabClient(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(gitlabCli)
			}

			s := app.NewService(gitlabCli, 0, newTestLogger())
			got, warnings, err := s.FetchAllCommits(
				context.Background(),
				"team",
				"token",
				tt.since,
				tt.maxProjects,
			)
			require.Equal(t, tt.wantErr, err != nil)
			if tt.wantErr {
				assert.True(t, app.IsProjectListError(err))
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.wantCommits, got)

			var gotWarnings []string
			for _, w := range warnings {
				gotWarnings = append(gotWarnings, w.Error())
			}
			assert.Equal(t, tt.wantWarnings, gotWarnings)
		})
	}
}

func TestServiceAnalyze(t *testing.T) {
	t.Parallel()

	validReq := app.Request{
		Group:       "team",
		Token:       "token",
		MaxProjects: 20,
	}

	tests := []struct {
		name        string
		setupMock   func(*mock.MockGitlabClient)
		req         app.Request
		wantMembers []string
		checkErr    func(error) bool
	}{
		{
			name:     "empty group",
			req:      app.Request{Token: "token", MaxProjects: 1},
			checkErr: app.IsInvalidRequestError,
		},
		{
			name:     "empty token",
			req:      app.Request{Group: "team", MaxProjects: 1},
			checkErr: app.IsInvalidRequestError,
		},
		{
			name:     "invalid max projects",
			req:      app.Request{Group: "team", Token: "token"},
			checkErr: app.IsInvalidRequestError,
		},
		{
			name: "token rejected",
			setupMock: func(m *mock.MockGitlabClient) {
				m.EXPECT().
					CurrentUser(gomock.Any(), "token").
					Return(app.User{}, errors.New("HTTP 401: {'message': '401 Unauthorized'}"))
			},
			req:      validReq,
			checkErr: app.IsAuthError,
		},
		{
			name: "empty user",
			setupMock: func(m *mock.MockGitlabClient) {
				m.EXPECT().
					CurrentUser(gomock.Any(), "token").
					Return(app.User{}, nil)
			},
			req:      validReq,
			checkErr: app.IsAuthError,
		},
		{
			name: "project list error",
			setupMock: func(m *mock.MockGitlabClient) {
				m.EXPECT().CurrentUser(gomock.Any(), "token").Return(app.User{ID: 1, Username: "u"}, nil)
				m.EXPECT().
					GroupProjects(gomock.Any(), "token", "team", 1, 50).
					Return(nil, errors.New("HTTP 403: forbidden"))
			},
			req:      validReq,
			checkErr: app.IsProjectListError,
		},
		{
			name: "no commits",
			setupMock: func(m *mock.MockGitlabClient) {
				m.EXPECT().CurrentUser(gomock.Any(), "token").Return(app.User{ID: 1, Username: "u"}, nil)
				m.EXPECT().
					GroupProjects(gomock.Any(), "token", "team", 1, 50).
					Return(makeProjects(1, 1), nil)
				m.EXPECT().
					ProjectCommits(gomock.Any(), "token", 1, 1, 100, nil).
					Return([]app.Commit{}, nil)
			},
			req: validReq,
			checkErr: func(err error) bool {
				return errors.Is(err, app.ErrNoCommits)
			},
		},
		{
			name: "valid analysis",
			setupMock: func(m *mock.MockGitlabClient) {
				m.EXPECT().CurrentUser(gomock.Any(), "token").Return(app.User{ID: 1, Username: "u"}, nil)
				m.EXPECT().
					GroupProjects(gomock.Any(), "token", "team", 1, 50).
					Return(makeProjects(1, 1), nil)
				m.EXPECT().
					ProjectCommits(gomock.Any(), "token", 1, 1, 100, nil).
					Return([]app.Commit{
						{ID: "1", Title: "Fix login bug", AuthorName: "Alice"},
						{ID: "2", Title: "Add docs", AuthorName: "Bob"},
						{ID: "3", Title: "wip", AuthorName: "Alice"},
					}, nil)
			},
			req:         validReq,
			wantMembers: []string{"Alice", "Bob"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			gitlabCli := mock.NewMockGitlabClient(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(gitlabCli)
			}

			s := app.NewService(gitlabCli, 0, newTestLogger())
			got, err := s.Analyze(context.Background(), tt.req)
			if tt.checkErr != nil {
				require.Error(t, err)
				assert.True(t, tt.checkErr(err), "unexpected error: %v", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)

			var names []string
			for _, m := range got.Members() {
				names = append(names, m.Name)
			}
			assert.Equal(t, tt.wantMembers, names)
			assert.Equal(t, tt.req.Group, got.Group)
			assert.Empty(t, got.Warnings)
		})
	}
}
