package github

import (
	"time"

	"github.com/google/go-github/v57/github"

	"github.com/clintrovert/octoscope/pkg/types"
)

// The mappers reshape upstream GitHub objects into the narrow output types.
// They are pure: missing optional fields become empty strings or zeros, and
// slices are always non-nil so empty collections serialize as [].

func mapRepositories(repos []*github.Repository) []types.RepoSummary {
	out := make([]types.RepoSummary, 0, len(repos))
	for _, r := range repos {
		out = append(out, types.RepoSummary{
			Name:        r.GetName(),
			FullName:    r.GetFullName(),
			Description: r.GetDescription(),
			URL:         r.GetHTMLURL(),
			Stars:       r.GetStargazersCount(),
			Forks:       r.GetForksCount(),
			Language:    r.GetLanguage(),
			CreatedAt:   formatTime(r.GetCreatedAt()),
			UpdatedAt:   formatTime(r.GetUpdatedAt()),
			Private:     r.GetPrivate(),
		})
	}
	return out
}

// mapIssues drops any item the upstream payload marks as a pull request.
func mapIssues(issues []*github.Issue) []types.IssueSummary {
	out := make([]types.IssueSummary, 0, len(issues))
	for _, is := range issues {
		if is.IsPullRequest() {
			continue
		}

		labels := make([]string, 0, len(is.Labels))
		for _, l := range is.Labels {
			labels = append(labels, l.GetName())
		}

		out = append(out, types.IssueSummary{
			Number:    is.GetNumber(),
			Title:     is.GetTitle(),
			Body:      is.GetBody(),
			State:     is.GetState(),
			URL:       is.GetHTMLURL(),
			User:      is.GetUser().GetLogin(),
			Labels:    labels,
			CreatedAt: formatTime(is.GetCreatedAt()),
			UpdatedAt: formatTime(is.GetUpdatedAt()),
			Comments:  is.GetComments(),
		})
	}
	return out
}

func mapPullRequests(prs []*github.PullRequest) []types.PullRequestSummary {
	out := make([]types.PullRequestSummary, 0, len(prs))
	for _, pr := range prs {
		out = append(out, types.PullRequestSummary{
			Number:    pr.GetNumber(),
			Title:     pr.GetTitle(),
			Body:      pr.GetBody(),
			State:     pr.GetState(),
			URL:       pr.GetHTMLURL(),
			User:      pr.GetUser().GetLogin(),
			Head:      pr.GetHead().GetRef(),
			Base:      pr.GetBase().GetRef(),
			CreatedAt: formatTime(pr.GetCreatedAt()),
			UpdatedAt: formatTime(pr.GetUpdatedAt()),
			Draft:     pr.GetDraft(),
			// Raw pointer, not the accessor: null means GitHub has not
			// finished computing mergeability and must stay null.
			Mergeable: pr.Mergeable,
		})
	}
	return out
}

// mapCodeResults passes the upstream total count through verbatim; it is the
// count of all matches, not of the items on this page.
func mapCodeResults(resp *CodeSearchResponse) types.CodeSearchResults {
	results := make([]types.CodeSearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		lang := ""
		if item.Language != nil {
			lang = *item.Language
		}

		results = append(results, types.CodeSearchResult{
			Name:       item.Name,
			Path:       item.Path,
			Repository: item.Repository.FullName,
			URL:        item.HTMLURL,
			Language:   lang,
			Size:       item.Size,
			Score:      item.Score,
		})
	}
	return types.CodeSearchResults{
		TotalCount: resp.TotalCount,
		Results:    results,
	}
}

// buildSearchQuery appends a language qualifier when a filter is supplied.
func buildSearchQuery(query, language string) string {
	if language != "" {
		return query + " language:" + language
	}
	return query
}

func formatTime(ts github.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}
