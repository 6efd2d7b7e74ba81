package pullreq

import (
	"regexp"
	"strings"
)

// Predicate selects pull requests for display.
type Predicate func(PullRequest) bool

// MatchPredicate builds a case-insensitive pattern match over a pull
// request's title and repository name; matching either field is enough.
// The pattern is treated as a regular expression. A pattern that does
// not compile (a half-typed query) degrades to a plain substring match
// rather than erroring. An empty pattern matches everything.
func MatchPredicate(pattern string) Predicate {
	if pattern == "" {
		return func(PullRequest) bool { return true }
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		needle := strings.ToLower(pattern)
		return func(pr PullRequest) bool {
			return strings.Contains(strings.ToLower(pr.Title), needle) ||
				strings.Contains(strings.ToLower(pr.Repo), needle)
		}
	}
	return func(pr PullRequest) bool {
		return re.MatchString(pr.Title) || re.MatchString(pr.Repo)
	}
}

// ExcludeURLs builds a predicate rejecting pull requests whose URL is in
// the given list, used by presentation layers to hide already-selected
// entries when accumulating a multi-open action.
func ExcludeURLs(urls []string) Predicate {
	return func(pr PullRequest) bool {
		for _, u := range urls {
			if pr.URL == u {
				return false
			}
		}
		return true
	}
}

// Filter returns the subsequence of prs accepted by the pattern match,
// preserving input order.
func Filter(prs []PullRequest, pattern string) []PullRequest {
	match := MatchPredicate(pattern)
	var out []PullRequest
	for _, pr := range prs {
		if match(pr) {
			out = append(out, pr)
		}
	}
	return out
}
