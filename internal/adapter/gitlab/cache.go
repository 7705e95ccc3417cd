package gitlab

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/m-zajac/gitlabteam/internal/app"
)

// CachedClient wraps gitlab client with caching layer.
// Token validation calls are never cached.
type CachedClient struct {
	client        app.GitlabClient
	projectsCache *lru.Cache
	commitsCache  *lru.Cache
	ttl           time.Duration
}

var _ app.GitlabClient = &CachedClient{}

// NewCachedClient creates new CachedClient instance.
func NewCachedClient(client app.GitlabClient, size int, ttl time.Duration) (*CachedClient, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be greater than 0")
	}
	projectsCache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache for projects: %w", err)
	}
	commitsCache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache for commits: %w", err)
	}

	return &CachedClient{
		client:        client,
		projectsCache: projectsCache,
		commitsCache:  commitsCache,
		ttl:           ttl,
	}, nil
}

// CurrentUser returns the user owning given token.
func (c *CachedClient) CurrentUser(ctx context.Context, token string) (app.User, error) {
	return c.client.CurrentUser(ctx, token)
}

// GroupProjects returns a single page of group's projects.
func (c *CachedClient) GroupProjects(ctx context.Context, token string, group string, page int, perPage int) ([]app.Project, error) {
	key := fmt.Sprintf("%s|%s|%d|%d", token, group, page, perPage)
	if val, ok := c.projectsCache.Get(key); ok {
		entry := val.(projectsCacheEntry)
		if entry.created.Add(c.ttl).After(time.Now()) {
			return entry.data, nil
		}
	}

	projects, err := c.client.GroupProjects(ctx, token, group, page, perPage)
	if err != nil {
		return projects, err
	}

	c.projectsCache.Add(key, projectsCacheEntry{
		created: time.Now(),
		data:    projects,
	})

	return projects, nil
}

// ProjectCommits returns a single page of project's commits.
func (c *CachedClient) ProjectCommits(
	ctx context.Context,
	token string,
	projectID int,
	page int,
	perPage int,
	since *time.Time,
) ([]app.Commit, error) {
	var sinceKey string
	if since != nil {
		sinceKey = since.Format("2006-01-02")
	}
	key := fmt.Sprintf("%s|%d|%d|%d|%s", token, projectID, page, perPage, sinceKey)
	if val, ok := c.commitsCache.Get(key); ok {
		entry := val.(commitsCacheEntry)
		if entry.created.Add(c.ttl).After(time.Now()) {
			return copyCommits(entry.data), nil
		}
	}

	commits, err := c.client.ProjectCommits(ctx, token, projectID, page, perPage, since)
	if err != nil {
		return commits, err
	}

	c.commitsCache.Add(key, commitsCacheEntry{
		created: time.Now(),
		data:    copyCommits(commits),
	})

	return commits, nil
}

// Callers tag returned commits, cached pages must not be shared.
func copyCommits(cs []app.Commit) []app.Commit {
	if cs == nil {
		return nil
	}
	out := make([]app.Commit, len(cs))
	copy(out, cs)
	return out
}

type projectsCacheEntry struct {
	created time.Time
	data    []app.Project
}

type commitsCacheEntry struct {
	created time.Time
	data    []app.Commit
}
