package types

// RepoSummary is the narrow repository shape returned to callers.
// Every field is always serialized, even when the upstream value is absent.
type RepoSummary struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	Language    string `json:"language"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	Private     bool   `json:"private"`
}

// IssueSummary is the narrow issue shape returned to callers.
type IssueSummary struct {
	Number    int      `json:"number"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	State     string   `json:"state"`
	URL       string   `json:"url"`
	User      string   `json:"user"`
	Labels    []string `json:"labels"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
	Comments  int      `json:"comments"`
}

// PullRequestSummary is the narrow pull request shape returned to callers.
// Mergeable is tri-state: true, false, or null while GitHub is still
// computing mergeability.
type PullRequestSummary struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	State     string `json:"state"`
	URL       string `json:"url"`
	User      string `json:"user"`
	Head      string `json:"head"`
	Base      string `json:"base"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Draft     bool   `json:"draft"`
	Mergeable *bool  `json:"mergeable"`
}

// CodeSearchResult is a single code search hit.
type CodeSearchResult struct {
	Name       string  `json:"name"`
	Path       string  `json:"path"`
	Repository string  `json:"repository"`
	URL        string  `json:"url"`
	Language   string  `json:"language"`
	Size       int     `json:"size"`
	Score      float64 `json:"score"`
}

// CodeSearchResults wraps code search hits together with the upstream
// total count, which is reported verbatim even when results are truncated.
type CodeSearchResults struct {
	TotalCount int                `json:"total_count"`
	Results    []CodeSearchResult `json:"results"`
}
