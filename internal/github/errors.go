package github

// FetchError is the single error kind surfaced by the aggregation
// boundary. Every failure along the multi-level fetch — listing
// repositories, listing pull requests, listing reviews, malformed
// payloads — collapses into it with a generic user-facing message; the
// cause stays wrapped for logs only.
type FetchError struct {
	Title       string
	Description string
	cause       error
}

func (e *FetchError) Error() string {
	return e.Title + ": " + e.Description
}

func (e *FetchError) Unwrap() error {
	return e.cause
}

func newFetchError(cause error) *FetchError {
	return &FetchError{
		Title:       "Error getting Pull Requests",
		Description: "Check your connectivity, GitHub URL and access token",
		cause:       cause,
	}
}
