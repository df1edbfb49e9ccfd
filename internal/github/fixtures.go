package github

import (
	"fmt"

	"github.com/google/go-github/v57/github"

	"github.com/clintrovert/octoscope/pkg/types"
)

// Canned payloads served when the effective credential is the demo sentinel.
// Each operation has its own fixture set matching that operation's output
// shape, so demo responses look exactly like mapped live responses.

func demoRepositories() []types.RepoSummary {
	return []types.RepoSummary{
		{
			Name:        "vscode",
			FullName:    "microsoft/vscode",
			Description: "Visual Studio Code",
			URL:         "https://github.com/microsoft/vscode",
			Stars:       150000,
			Forks:       26000,
			Language:    "TypeScript",
			CreatedAt:   "2015-09-03T20:33:27Z",
			UpdatedAt:   "2024-01-15T10:30:00Z",
			Private:     false,
		},
		{
			Name:        "react",
			FullName:    "facebook/react",
			Description: "A declarative, efficient, and flexible JavaScript library for building user interfaces.",
			URL:         "https://github.com/facebook/react",
			Stars:       220000,
			Forks:       45000,
			Language:    "JavaScript",
			CreatedAt:   "2013-05-24T16:15:54Z",
			UpdatedAt:   "2024-01-15T12:00:00Z",
			Private:     false,
		},
	}
}

func demoIssues(owner, repo string) []types.IssueSummary {
	return []types.IssueSummary{
		{
			Number:    12345,
			Title:     "Bug: Component not rendering correctly",
			Body:      "The component is not displaying the expected content...",
			State:     "open",
			URL:       fmt.Sprintf("https://github.com/%s/%s/issues/12345", owner, repo),
			User:      "developer123",
			Labels:    []string{"bug", "frontend"},
			CreatedAt: "2024-01-10T10:30:00Z",
			UpdatedAt: "2024-01-15T14:20:00Z",
			Comments:  5,
		},
		{
			Number:    12344,
			Title:     "Feature: Add dark mode support",
			Body:      "It would be great to have a dark mode option...",
			State:     "open",
			URL:       fmt.Sprintf("https://github.com/%s/%s/issues/12344", owner, repo),
			User:      "feature-requestor",
			Labels:    []string{"enhancement", "ui"},
			CreatedAt: "2024-01-08T09:15:00Z",
			UpdatedAt: "2024-01-12T16:45:00Z",
			Comments:  12,
		},
	}
}

func demoPullRequests(owner, repo string) []types.PullRequestSummary {
	return []types.PullRequestSummary{
		{
			Number:    6789,
			Title:     "Fix: Resolve memory leak in data processing",
			Body:      "This PR fixes a memory leak that was occurring...",
			State:     "open",
			URL:       fmt.Sprintf("https://github.com/%s/%s/pull/6789", owner, repo),
			User:      "bug-fixer",
			Head:      "feature/fix-memory-leak",
			Base:      "main",
			CreatedAt: "2024-01-12T11:30:00Z",
			UpdatedAt: "2024-01-15T09:15:00Z",
			Draft:     false,
			Mergeable: github.Bool(true),
		},
		{
			Number:    6788,
			Title:     "Add: New authentication system",
			Body:      "Implements OAuth2 authentication flow...",
			State:     "open",
			URL:       fmt.Sprintf("https://github.com/%s/%s/pull/6788", owner, repo),
			User:      "auth-developer",
			Head:      "feature/oauth2-auth",
			Base:      "main",
			CreatedAt: "2024-01-10T14:20:00Z",
			UpdatedAt: "2024-01-14T16:30:00Z",
			Draft:     false,
			Mergeable: nil,
		},
	}
}

func demoCodeSearch() types.CodeSearchResults {
	return types.CodeSearchResults{
		TotalCount: 2,
		Results: []types.CodeSearchResult{
			{
				Name:       "app.js",
				Path:       "src/app.js",
				Repository: "microsoft/vscode",
				URL:        "https://github.com/microsoft/vscode/blob/main/src/app.js",
				Language:   "JavaScript",
				Size:       1024,
				Score:      95.5,
			},
			{
				Name:       "component.tsx",
				Path:       "components/Button.tsx",
				Repository: "facebook/react",
				URL:        "https://github.com/facebook/react/blob/main/components/Button.tsx",
				Language:   "TypeScript",
				Size:       2048,
				Score:      88.2,
			},
		},
	}
}
