package main

import "time"

// Config is the container for app configuration
type Config struct {
	// HTTPServerAddress - listen address for http server
	HTTPServerAddress string `default:"0.0.0.0:8080"`

	// HTTPProfileServerAddress - listen address for profiler http server. If empty, profiler server is disabled
	HTTPProfileServerAddress string `default:""`

	// ServiceResponseTimeout - timeout for read endpoints. Analysis runs are bound only by gitlab call timeouts
	ServiceResponseTimeout time.Duration `default:"30s"`

	// GitlabAPIAddress - address for gitlab rest api v4 with protocol
	GitlabAPIAddress string `default:"https://code.swecha.org/api/v4"`

	// GitlabTimeout - timeout for a single gitlab api call
	GitlabTimeout time.Duration `default:"30s"`

	// GitlabAPIRateLimit - max frequency for gitlab api calls per second, 0 means unlimited
	GitlabAPIRateLimit float64 `default:"0"`

	// GitlabProjectDelay - pause after each project's commits are fetched
	GitlabProjectDelay time.Duration `default:"200ms"`

	// GitlabClientCacheSize - maximum number of pages in cache for each gitlab client method. 0 disables the cache
	GitlabClientCacheSize int `default:"0"`

	// GitlabClientCacheTTL - maximum lifetime for gitlab client cache entries
	GitlabClientCacheTTL time.Duration `default:"10m"`

	// LogLevel - logrus level name
	LogLevel string `default:"info"`
}
