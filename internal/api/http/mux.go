package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/m-zajac/gitlabteam/internal/app"
	"github.com/sirupsen/logrus"
)

// Service runs team analysis.
//go:generate mockgen -destination mock/service.go -package mock github.com/m-zajac/gitlabteam/internal/api/http Service
type Service interface {
	Analyze(ctx context.Context, req app.Request) (*app.Analysis, error)
}

// NewMux creates router for app's http server.
// timeout applies to read endpoints only, analysis runs are bound by per call api timeouts.
func NewMux(service Service, state *app.AnalysisState, timeout time.Duration, l logrus.FieldLogger) *http.ServeMux {
	timeoutMiddleware := NewTimeoutMiddleware(timeout)
	logMiddleware := NewLoggingMiddleware(l)

	membersPath := "/members/"
	memberHandler := NewMemberHandler(
		func(r *http.Request) string {
			return strings.TrimPrefix(r.URL.Path, membersPath)
		},
		state,
		time.Now,
		l,
	)

	m := http.NewServeMux()
	m.HandleFunc("/analyze", logMiddleware(NewAnalyzeHandler(service, state, l)))
	m.HandleFunc("/overview", logMiddleware(timeoutMiddleware(NewOverviewHandler(state, l))))
	m.HandleFunc("/members", logMiddleware(timeoutMiddleware(NewMembersHandler(state, l))))
	m.HandleFunc(membersPath, logMiddleware(timeoutMiddleware(memberHandler)))

	return m
}
