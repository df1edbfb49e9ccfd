package github

import (
	"errors"
	"fmt"

	"github.com/google/go-github/v57/github"
)

// DemoToken is the sentinel credential. When the effective credential for a
// call equals this value the operation is served from bundled fixtures and
// no network request is made.
const DemoToken = "demo"

// TransportError reports a failure to reach the GitHub API at all, such as
// DNS resolution, connection refused, or a request timeout.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamHTTPError reports a non-2xx response from the GitHub API.
type UpstreamHTTPError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("GitHub API returned %d: %s", e.StatusCode, e.Message)
}

// classifyError sorts a failed API call into the adapter's error taxonomy:
// responses that reached GitHub become UpstreamHTTPError, everything else
// becomes TransportError.
func classifyError(err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		return &UpstreamHTTPError{
			StatusCode: errResp.Response.StatusCode,
			Message:    errResp.Message,
		}
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &UpstreamHTTPError{
			StatusCode: rateErr.Response.StatusCode,
			Message:    rateErr.Message,
		}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &UpstreamHTTPError{
			StatusCode: abuseErr.Response.StatusCode,
			Message:    abuseErr.Message,
		}
	}
	return &TransportError{Err: err}
}
