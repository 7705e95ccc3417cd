package app

import "time"

// Project entity
type Project struct {
	ID                int
	PathWithNamespace string
}

// User entity
type User struct {
	ID       int
	Username string
	Name     string
}

// Commit entity.
// ProjectName is not returned by the api, it's set by the fetcher.
type Commit struct {
	ID          string
	ShortID     string
	Title       string
	Message     string
	AuthorName  string
	AuthorEmail string
	CreatedAt   string
	WebURL      string
	ProjectName string
}

// Text returns commit's title, or its message if title is empty.
func (c Commit) Text() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Message
}

// Request holds parameters of a single analysis run.
type Request struct {
	Group       string
	Token       string
	Since       *time.Time
	MaxProjects int
}

// Validate checks request parameters that don't need the api.
func (r Request) Validate() error {
	if r.Group == "" {
		return InvalidRequestError("group cannot be empty")
	}
	if r.Token == "" {
		return InvalidRequestError("token cannot be empty")
	}
	if r.MaxProjects < 1 {
		return InvalidRequestError("max projects must be greater than zero")
	}

	return nil
}
