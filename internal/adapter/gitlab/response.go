package gitlab

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/m-zajac/gitlabteam/internal/app"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type userResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (u userResponse) ToUser() app.User {
	return app.User{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
	}
}

type projectsResponse []struct {
	ID                int    `json:"id"`
	PathWithNamespace string `json:"path_with_namespace"`
}

func (p projectsResponse) ToProjects() []app.Project {
	ps := make([]app.Project, 0, len(p))
	for _, el := range p {
		ps = append(ps, app.Project{
			ID:                el.ID,
			PathWithNamespace: el.PathWithNamespace,
		})
	}

	return ps
}

type commitsResponse []struct {
	ID          string `json:"id"`
	ShortID     string `json:"short_id"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	CreatedAt   string `json:"created_at"`
	WebURL      string `json:"web_url"`
}

func (c commitsResponse) ToCommits() []app.Commit {
	cs := make([]app.Commit, 0, len(c))
	for _, el := range c {
		cs = append(cs, app.Commit{
			ID:          el.ID,
			ShortID:     el.ShortID,
			Title:       el.Title,
			Message:     el.Message,
			AuthorName:  el.AuthorName,
			AuthorEmail: el.AuthorEmail,
			CreatedAt:   el.CreatedAt,
			WebURL:      el.WebURL,
		})
	}

	return cs
}
