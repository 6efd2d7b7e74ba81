// Package pullreq holds the pull request domain model and the
// ordering/partitioning pipeline applied to fetched records.
package pullreq

import (
	"slices"
	"time"
)

// PullRequest is an immutable snapshot of one open pull request.
// URL is the canonical web URL and acts as the identity key when
// merging concurrently fetched results.
type PullRequest struct {
	Repo      string
	Title     string
	URL       string
	IsDraft   bool
	CreatedBy string
	CreatedAt time.Time
	Approvers []string // unique reviewer logins with an APPROVED review
}

// Approved reports whether the pull request counts as approved for the
// given user: two distinct approvers, or the user being one of them.
func (pr PullRequest) Approved(user string) bool {
	return len(pr.Approvers) >= 2 || slices.Contains(pr.Approvers, user)
}

// NewApproverSet collapses duplicate logins (a reviewer re-approving
// counts once) and returns them sorted for stable output.
func NewApproverSet(logins []string) []string {
	if len(logins) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(logins))
	for _, l := range logins {
		set[l] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}
