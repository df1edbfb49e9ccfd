package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	userAgent      = "octoscope"
	requestTimeout = 10 * time.Second
)

// Client issues single-page read calls against the GitHub REST API. It is
// stateless: the credential for each call is supplied by the caller, so one
// Client serves requests carrying different tokens.
type Client struct {
	baseURL *url.URL
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates a new GitHub client rooted at baseURL.
func NewClient(baseURL string, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	// go-github resolves endpoints relative to the base, which must end in /.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	return &Client{
		baseURL: u,
		timeout: requestTimeout,
		logger:  logger,
	}, nil
}

// api builds an API client bound to the given credential. Requests carry no
// Authorization header when the credential is empty or the demo sentinel.
func (c *Client) api(token string) *github.Client {
	hc := &http.Client{Timeout: c.timeout}
	if token != "" && token != DemoToken {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		hc = oauth2.NewClient(context.Background(), ts)
		hc.Timeout = c.timeout
	}

	gh := github.NewClient(hc)
	gh.BaseURL = c.baseURL
	gh.UserAgent = userAgent
	return gh
}

// ListUserRepos fetches up to perPage of a user's repositories, most
// recently updated first.
func (c *Client) ListUserRepos(ctx context.Context, token, username string, perPage int) ([]*github.Repository, error) {
	opts := &github.RepositoryListOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	repos, _, err := c.api(token).Repositories.List(ctx, username, opts)
	if err != nil {
		return nil, classifyError(err)
	}

	c.logger.Debug("listed user repositories",
		zap.String("username", username),
		zap.Int("count", len(repos)),
	)

	return repos, nil
}

// ListRepoIssues fetches up to perPage issues for a repository, most
// recently updated first. The result may include pull requests; GitHub's
// issues endpoint interleaves them and callers are expected to filter.
func (c *Client) ListRepoIssues(ctx context.Context, token, owner, repo, state string, perPage int) ([]*github.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       state,
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	issues, _, err := c.api(token).Issues.ListByRepo(ctx, owner, repo, opts)
	if err != nil {
		return nil, classifyError(err)
	}

	c.logger.Debug("listed repository issues",
		zap.String("owner", owner),
		zap.String("repo", repo),
		zap.Int("count", len(issues)),
	)

	return issues, nil
}

// ListRepoPullRequests fetches up to perPage pull requests for a repository,
// most recently updated first.
func (c *Client) ListRepoPullRequests(ctx context.Context, token, owner, repo, state string, perPage int) ([]*github.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       state,
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	prs, _, err := c.api(token).PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		return nil, classifyError(err)
	}

	c.logger.Debug("listed repository pull requests",
		zap.String("owner", owner),
		zap.String("repo", repo),
		zap.Int("count", len(prs)),
	)

	return prs, nil
}

// CodeSearchResponse is the subset of the search/code payload the adapter
// consumes. The typed search API in go-github drops the language, size and
// score fields, so the request is issued against the raw endpoint instead.
type CodeSearchResponse struct {
	TotalCount int              `json:"total_count"`
	Items      []CodeSearchItem `json:"items"`
}

// CodeSearchItem is a single upstream code search hit.
type CodeSearchItem struct {
	Name       string  `json:"name"`
	Path       string  `json:"path"`
	HTMLURL    string  `json:"html_url"`
	Language   *string `json:"language"`
	Size       int     `json:"size"`
	Score      float64 `json:"score"`
	Repository struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
}

// SearchCode runs a code search with the fully built query string, ordered
// by most recently indexed.
func (c *Client) SearchCode(ctx context.Context, token, query string, perPage int) (*CodeSearchResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("sort", "indexed")

	gh := c.api(token)
	req, err := gh.NewRequest(http.MethodGet, "search/code?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	var out CodeSearchResponse
	if _, err := gh.Do(ctx, req, &out); err != nil {
		return nil, classifyError(err)
	}

	c.logger.Debug("searched code",
		zap.String("query", query),
		zap.Int("total_count", out.TotalCount),
	)

	return &out, nil
}
