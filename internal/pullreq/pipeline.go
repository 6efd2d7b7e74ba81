package pullreq

import "sort"

// Partition turns a raw fetch result into the two display views.
//
// Drafts are dropped first. The remainder is stable-sorted newest first,
// then stable-sorted again so the user's own pull requests precede
// everyone else's while each group keeps its recency order. Finally the
// sequence is split on the approval predicate: approved records move to
// the second view in their relative order, the rest stay in the first.
func Partition(prs []PullRequest, user string) (open, approved []PullRequest) {
	open = make([]PullRequest, 0, len(prs))
	for _, pr := range prs {
		if !pr.IsDraft {
			open = append(open, pr)
		}
	}

	sort.SliceStable(open, func(i, j int) bool {
		return open[i].CreatedAt.After(open[j].CreatedAt)
	})
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].CreatedBy == user && open[j].CreatedBy != user
	})

	remaining := open[:0]
	for _, pr := range open {
		if pr.Approved(user) {
			approved = append(approved, pr)
		} else {
			remaining = append(remaining, pr)
		}
	}
	return remaining, approved
}
