package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Limit bounds applied before any upstream call.
const (
	minLimit       = 1
	maxListLimit   = 30
	maxSearchLimit = 20
)

// Service implements the four read operations shared by both transport
// faces. Every method returns a pretty-printed JSON document holding either
// the mapped payload or an {"error": ...} envelope; fetch failures never
// escape past the method boundary.
type Service struct {
	client *Client
	token  string
	logger *zap.Logger
}

// NewService creates a new Service. token is the process-wide credential
// used when a call carries no explicit api_key override.
func NewService(client *Client, token string, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		token:  token,
		logger: logger,
	}
}

// ReposRequest carries the arguments of a user-repositories lookup.
type ReposRequest struct {
	Username string `json:"username"`
	Limit    int    `json:"limit"`
	APIKey   string `json:"api_key"`
}

// IssuesRequest carries the arguments of a repository-issues lookup.
type IssuesRequest struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	State  string `json:"state"`
	Limit  int    `json:"limit"`
	APIKey string `json:"api_key"`
}

// PullsRequest carries the arguments of a repository-pull-requests lookup.
type PullsRequest struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	State  string `json:"state"`
	Limit  int    `json:"limit"`
	APIKey string `json:"api_key"`
}

// SearchRequest carries the arguments of a code search.
type SearchRequest struct {
	Query    string `json:"query"`
	Language string `json:"language"`
	Limit    int    `json:"limit"`
	APIKey   string `json:"api_key"`
}

// UserRepos returns a user's most recently updated repositories.
func (s *Service) UserRepos(ctx context.Context, req ReposRequest) string {
	limit := clamp(req.Limit, minLimit, maxListLimit)
	token := s.credential(req.APIKey)

	if token == DemoToken {
		return marshal(demoRepositories())
	}

	repos, err := s.client.ListUserRepos(ctx, token, req.Username, limit)
	if err != nil {
		return s.failure("get_repos", err)
	}
	return marshal(mapRepositories(repos))
}

// RepoIssues returns a repository's issues, with interleaved pull requests
// stripped out.
func (s *Service) RepoIssues(ctx context.Context, req IssuesRequest) string {
	limit := clamp(req.Limit, minLimit, maxListLimit)
	token := s.credential(req.APIKey)

	if token == DemoToken {
		return marshal(demoIssues(req.Owner, req.Repo))
	}

	issues, err := s.client.ListRepoIssues(ctx, token, req.Owner, req.Repo, req.State, limit)
	if err != nil {
		return s.failure("get_issues", err)
	}
	return marshal(mapIssues(issues))
}

// RepoPullRequests returns a repository's pull requests.
func (s *Service) RepoPullRequests(ctx context.Context, req PullsRequest) string {
	limit := clamp(req.Limit, minLimit, maxListLimit)
	token := s.credential(req.APIKey)

	if token == DemoToken {
		return marshal(demoPullRequests(req.Owner, req.Repo))
	}

	prs, err := s.client.ListRepoPullRequests(ctx, token, req.Owner, req.Repo, req.State, limit)
	if err != nil {
		return s.failure("get_pull_requests", err)
	}
	return marshal(mapPullRequests(prs))
}

// SearchCode returns code search hits for the query, optionally narrowed to
// one language.
func (s *Service) SearchCode(ctx context.Context, req SearchRequest) string {
	limit := clamp(req.Limit, minLimit, maxSearchLimit)
	token := s.credential(req.APIKey)

	if token == DemoToken {
		return marshal(demoCodeSearch())
	}

	resp, err := s.client.SearchCode(ctx, token, buildSearchQuery(req.Query, req.Language), limit)
	if err != nil {
		return s.failure("search_code", err)
	}
	return marshal(mapCodeResults(resp))
}

// credential resolves the effective token for a call: the explicit override
// when supplied, otherwise the configured process-wide token.
func (s *Service) credential(apiKey string) string {
	if apiKey != "" {
		return apiKey
	}
	return s.token
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// failure converts a fetch error into the uniform error envelope. Transport
// failures and upstream HTTP failures produce distinct prefixes.
func (s *Service) failure(op string, err error) string {
	s.logger.Warn("operation failed",
		zap.String("operation", op),
		zap.Error(err),
	)

	var te *TransportError
	if errors.As(err, &te) {
		return marshal(errorEnvelope{Error: "Request failed: " + te.Error()})
	}
	return marshal(errorEnvelope{Error: "Unexpected error: " + err.Error()})
}

// marshal pretty-prints v. The output types contain nothing that can fail
// to encode, but a fallback envelope is kept so the contract of always
// returning well-formed JSON holds regardless.
func marshal(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("{\n  \"error\": \"Unexpected error: %s\"\n}", err)
	}
	return string(b)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
