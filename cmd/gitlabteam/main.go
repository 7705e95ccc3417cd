package main

import (
	netHttp "net/http"

	"github.com/kelseyhightower/envconfig"
	"github.com/m-zajac/gitlabteam/internal/adapter/gitlab"
	"github.com/m-zajac/gitlabteam/internal/api/http"
	"github.com/m-zajac/gitlabteam/internal/app"
	"github.com/m-zajac/gitlabteam/internal/limiter"
	"github.com/sirupsen/logrus"
)

func main() {
	l := logrus.New()
	l.Level = logrus.InfoLevel

	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		l.Fatalf("couldn't parse config: %v", err)
	}
	level, err := logrus.ParseLevel(conf.LogLevel)
	if err != nil {
		l.Fatalf("invalid log level: %v", err)
	}
	l.Level = level

	limitedHTTPClient := limiter.NewHTTPDoer(
		&netHttp.Client{},
		conf.GitlabAPIRateLimit,
	)

	var gitlabClient app.GitlabClient = gitlab.NewClient(
		limitedHTTPClient,
		conf.GitlabAPIAddress,
		conf.GitlabTimeout,
	)
	if conf.GitlabClientCacheSize > 0 {
		gitlabClient, err = gitlab.NewCachedClient(
			gitlabClient,
			conf.GitlabClientCacheSize,
			conf.GitlabClientCacheTTL,
		)
		if err != nil {
			l.Fatalf("couldn't create gitlab client cache: %v", err)
		}
	}

	service := app.NewService(
		gitlabClient,
		conf.GitlabProjectDelay,
		l.WithField("component", "service"),
	)
	state := app.NewAnalysisState()

	mux := http.NewMux(service, state, conf.ServiceResponseTimeout, l.WithField("component", "mux"))
	server := http.NewServer(
		conf.HTTPServerAddress,
		conf.HTTPProfileServerAddress,
		mux,
		l.WithField("component", "httpServer"),
	)

	server.Run()
}
