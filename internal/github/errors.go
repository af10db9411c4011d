package github

import "fmt"

// ErrorKind classifies a failed page fetch. Rate limiting never surfaces as
// an error: the fetcher waits out the reset window and retries internally.
type ErrorKind string

const (
	// KindNotFound: repository missing or inaccessible (404). Terminal.
	KindNotFound ErrorKind = "not_found"
	// KindEmptyRepo: repository empty or in an invalid state (409). Terminal.
	KindEmptyRepo ErrorKind = "empty_repo"
	// KindTimeout: the request timed out. Retried with exponential backoff
	// up to the configured budget.
	KindTimeout ErrorKind = "timeout"
	// KindTransport: any other transport-level failure (DNS, connection
	// reset, unexpected status, malformed body). Terminal, no retry.
	KindTransport ErrorKind = "transport"
)

type FetchError struct {
	Kind       ErrorKind
	StatusCode int
	URL        string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error fetching %s: %v", e.Kind, e.URL, e.Err)
	}
	return fmt.Sprintf("%s error fetching %s (status %d)", e.Kind, e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the walker may retry the same page after backoff.
func (e *FetchError) Retryable() bool {
	return e.Kind == KindTimeout
}
