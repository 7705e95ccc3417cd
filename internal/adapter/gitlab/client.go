package gitlab

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m-zajac/gitlabteam/internal/app"
)

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client returns details about gitlab groups, projects and commits.
// This struct is an adapter for app.GitlabClient.
//go:generate mockgen -destination ../../app/mock/gitlabcli.go -package mock github.com/m-zajac/gitlabteam/internal/app GitlabClient
type Client struct {
	doer    HTTPDoer
	address string
	timeout time.Duration

	responseMaxSize int
}

var _ app.GitlabClient = &Client{}

// NewClient creates new gitlab client.
// address is the api v4 root, e.g. https://gitlab.com/api/v4.
// timeout applies to every single api call.
func NewClient(doer HTTPDoer, address string, timeout time.Duration) *Client {
	return &Client{
		doer:    doer,
		address: address,
		timeout: timeout,

		responseMaxSize: 1024 * 1024 * 30,
	}
}

// CurrentUser returns the user owning given token.
func (c *Client) CurrentUser(ctx context.Context, token string) (app.User, error) {
	body, err := c.Request(ctx, "/user", token, nil)
	if err != nil {
		return app.User{}, err
	}

	var resp userResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return app.User{}, fmt.Errorf("unmarshalling response: %w", err)
	}

	return resp.ToUser(), nil
}

// GroupProjects returns a single page of group's projects.
// group can be a numeric id or a full path.
func (c *Client) GroupProjects(ctx context.Context, token string, group string, page int, perPage int) ([]app.Project, error) {
	if group == "" {
		return nil, app.InvalidRequestError("group cannot be empty")
	}

	v := make(url.Values)
	v.Set("page", strconv.Itoa(page))
	v.Set("per_page", strconv.Itoa(perPage))

	body, err := c.Request(ctx, "/groups/"+url.PathEscape(group)+"/projects", token, v)
	if err != nil {
		return nil, err
	}

	var resp projectsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshalling response: %w", err)
	}

	return resp.ToProjects(), nil
}

// ProjectCommits returns a single page of project's commits.
// If since is set, only commits after this date are returned.
func (c *Client) ProjectCommits(
	ctx context.Context,
	token string,
	projectID int,
	page int,
	perPage int,
	since *time.Time,
) ([]app.Commit, error) {
	v := make(url.Values)
	v.Set("page", strconv.Itoa(page))
	v.Set("per_page", strconv.Itoa(perPage))
	if since != nil {
		v.Set("since", since.Format("2006-01-02"))
	}

	path := fmt.Sprintf("/projects/%d/repository/commits", projectID)
	body, err := c.Request(ctx, path, token, v)
	if err != nil {
		return nil, err
	}

	var resp commitsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshalling response: %w", err)
	}

	return resp.ToCommits(), nil
}

// Request makes authenticated GET request to the api and returns response body.
//
// Returns *RequestError when the request couldn't be made, and *APIError when the
// api responded with status other than 200. There are no retries.
func (c *Client) Request(ctx context.Context, path string, token string, params url.Values) ([]byte, error) {
	u, err := url.Parse(c.address + path)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("invalid url: %w", err)}
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("creating http request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("PRIVATE-TOKEN", token)

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	// Always drain body before close to allow connection reuse.
	defer func() {
		_, _ = io.CopyN(io.Discard, resp.Body, 1024)
		resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(c.responseMaxSize)))
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("reading http response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       b,
		}
	}

	return b, nil
}
