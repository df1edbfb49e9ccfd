package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clintrovert/octoscope/internal/github"
)

// GitHubTools exposes the GitHub read operations as callable tools.
type GitHubTools struct {
	service *github.Service
}

// NewGitHubTools creates the tool provider backed by the given service.
func NewGitHubTools(service *github.Service) *GitHubTools {
	return &GitHubTools{service: service}
}

// RegisterAll registers the four read tools with the registry.
func (g *GitHubTools) RegisterAll(registry *Registry) error {
	for _, tool := range []*Tool{
		g.reposTool(),
		g.issuesTool(),
		g.pullRequestsTool(),
		g.searchCodeTool(),
	} {
		if err := registry.Register(tool); err != nil {
			return err
		}
	}
	return nil
}

func (g *GitHubTools) reposTool() *Tool {
	return &Tool{
		Definition: Definition{
			Name:        "get_repos",
			Description: "Get repositories for a GitHub user",
			InputSchema: Schema{
				Type: "object",
				Properties: map[string]Property{
					"username": {
						Type:        "string",
						Description: "GitHub username",
					},
					"limit": {
						Type:        "integer",
						Description: "Number of repositories to return (1-30)",
						Minimum:     intPtr(1),
						Maximum:     intPtr(30),
						Default:     10,
					},
					"api_key": {
						Type:        "string",
						Description: "GitHub personal access token (optional)",
					},
				},
				Required: []string{"username"},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			var req github.ReposRequest
			if err := decodeArgs(args, &req); err != nil {
				return "", err
			}
			return g.service.UserRepos(ctx, req), nil
		},
	}
}

func (g *GitHubTools) issuesTool() *Tool {
	return &Tool{
		Definition: Definition{
			Name:        "get_issues",
			Description: "Get issues for a GitHub repository",
			InputSchema: Schema{
				Type: "object",
				Properties: map[string]Property{
					"owner": {
						Type:        "string",
						Description: "Repository owner",
					},
					"repo": {
						Type:        "string",
						Description: "Repository name",
					},
					"state": {
						Type:        "string",
						Description: "Issue state",
						Enum:        []string{"open", "closed", "all"},
						Default:     "open",
					},
					"limit": {
						Type:        "integer",
						Description: "Number of issues to return (1-30)",
						Minimum:     intPtr(1),
						Maximum:     intPtr(30),
						Default:     10,
					},
					"api_key": {
						Type:        "string",
						Description: "GitHub personal access token (optional)",
					},
				},
				Required: []string{"owner", "repo"},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			var req github.IssuesRequest
			if err := decodeArgs(args, &req); err != nil {
				return "", err
			}
			return g.service.RepoIssues(ctx, req), nil
		},
	}
}

func (g *GitHubTools) pullRequestsTool() *Tool {
	return &Tool{
		Definition: Definition{
			Name:        "get_pull_requests",
			Description: "Get pull requests for a GitHub repository",
			InputSchema: Schema{
				Type: "object",
				Properties: map[string]Property{
					"owner": {
						Type:        "string",
						Description: "Repository owner",
					},
					"repo": {
						Type:        "string",
						Description: "Repository name",
					},
					"state": {
						Type:        "string",
						Description: "PR state",
						Enum:        []string{"open", "closed", "all"},
						Default:     "open",
					},
					"limit": {
						Type:        "integer",
						Description: "Number of PRs to return (1-30)",
						Minimum:     intPtr(1),
						Maximum:     intPtr(30),
						Default:     10,
					},
					"api_key": {
						Type:        "string",
						Description: "GitHub personal access token (optional)",
					},
				},
				Required: []string{"owner", "repo"},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			var req github.PullsRequest
			if err := decodeArgs(args, &req); err != nil {
				return "", err
			}
			return g.service.RepoPullRequests(ctx, req), nil
		},
	}
}

func (g *GitHubTools) searchCodeTool() *Tool {
	return &Tool{
		Definition: Definition{
			Name:        "search_code",
			Description: "Search for code on GitHub",
			InputSchema: Schema{
				Type: "object",
				Properties: map[string]Property{
					"query": {
						Type:        "string",
						Description: "Search query",
					},
					"language": {
						Type:        "string",
						Description: "Programming language filter (optional)",
					},
					"limit": {
						Type:        "integer",
						Description: "Number of results to return (1-20)",
						Minimum:     intPtr(1),
						Maximum:     intPtr(20),
						Default:     10,
					},
					"api_key": {
						Type:        "string",
						Description: "GitHub personal access token (optional)",
					},
				},
				Required: []string{"query"},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			var req github.SearchRequest
			if err := decodeArgs(args, &req); err != nil {
				return "", err
			}
			return g.service.SearchCode(ctx, req), nil
		},
	}
}

// decodeArgs converts a validated argument map into a typed request via a
// JSON round trip. Keys outside the request shape are dropped.
func decodeArgs(args map[string]any, v any) error {
	b, err := json.Marshal(args)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("invalid arguments: %s", err)}
	}
	if err := json.Unmarshal(b, v); err != nil {
		return &ValidationError{Message: fmt.Sprintf("invalid arguments: %s", err)}
	}
	return nil
}

func intPtr(i int) *int { return &i }
