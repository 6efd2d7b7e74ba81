package github

import (
	"context"
	"fmt"
	"sync"

	api "github.com/google/go-github/v66/github"
	"golang.org/x/sync/errgroup"

	"github.com/jvaz/prdeck/internal/logging"
	"github.com/jvaz/prdeck/internal/pullreq"
)

// Fetcher aggregates open pull requests across every repository of one
// organization. The repository list is fetched once and memoized for the
// process lifetime; pull request and review state is fetched fresh on
// every FetchAll.
type Fetcher struct {
	client        *api.Client
	org           string
	maxConcurrent int
	log           logging.Logger

	mu           sync.Mutex
	repos        []*api.Repository
	reposFetched bool
}

// NewFetcher wires a Fetcher over an already-configured API client.
// maxConcurrent caps in-flight requests at each fan-out level; values
// below one disable the cap.
func NewFetcher(client *api.Client, org string, maxConcurrent int, log logging.Logger) *Fetcher {
	return &Fetcher{
		client:        client,
		org:           org,
		maxConcurrent: maxConcurrent,
		log:           log.WithName("fetcher").WithValues("org", org),
	}
}

// FetchAll returns one record per open pull request in the organization,
// drafts included. The contract is whole-or-nothing: any failing
// repository, pull request or review lookup aborts the whole fetch with
// a FetchError and cancels its in-flight siblings.
func (f *Fetcher) FetchAll(ctx context.Context) ([]pullreq.PullRequest, error) {
	repos, err := f.listRepos(ctx)
	if err != nil {
		f.log.Error(err, "listing repositories failed")
		return nil, newFetchError(err)
	}

	// Results merge keyed by canonical URL; arrival order is irrelevant,
	// ordering is imposed later by the pipeline.
	byURL := make(map[string]pullreq.PullRequest)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	if f.maxConcurrent > 0 {
		g.SetLimit(f.maxConcurrent)
	}
	for _, repo := range repos {
		g.Go(func() error {
			return f.fetchRepoPulls(ctx, repo, &mu, byURL)
		})
	}
	if err := g.Wait(); err != nil {
		f.log.Error(err, "fetching pull requests failed")
		return nil, newFetchError(err)
	}

	out := make([]pullreq.PullRequest, 0, len(byURL))
	for _, pr := range byURL {
		out = append(out, pr)
	}
	f.log.Info("fetched pull requests", "repos", len(repos), "pulls", len(out))
	return out, nil
}

// listRepos lists the organization's repositories on the first call and
// serves the memoized result afterwards. The repository set is assumed
// stable across refreshes, unlike pull request state.
func (f *Fetcher) listRepos(ctx context.Context) ([]*api.Repository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reposFetched {
		return f.repos, nil
	}
	repos, _, err := f.client.Repositories.ListByOrg(ctx, f.org, &api.RepositoryListByOrgOptions{
		ListOptions: api.ListOptions{PerPage: 100},
	})
	if err != nil {
		return nil, err
	}
	f.repos = repos
	f.reposFetched = true
	return repos, nil
}

// fetchRepoPulls lists page-one open pull requests of one repository and
// fans out one build task per pull request, joining them before
// returning so each fan-out level stays a synchronization barrier.
func (f *Fetcher) fetchRepoPulls(ctx context.Context, repo *api.Repository, mu *sync.Mutex, byURL map[string]pullreq.PullRequest) error {
	pulls, _, err := f.client.PullRequests.List(ctx, f.org, repo.GetName(), &api.PullRequestListOptions{
		State:       "open",
		ListOptions: api.ListOptions{PerPage: 100},
	})
	if err != nil {
		return err
	}
	f.log.Debug("listed pull requests", "repo", repo.GetName(), "count", len(pulls))

	g, ctx := errgroup.WithContext(ctx)
	if f.maxConcurrent > 0 {
		g.SetLimit(f.maxConcurrent)
	}
	for _, raw := range pulls {
		g.Go(func() error {
			pr, err := f.buildPullRequest(ctx, repo, raw)
			if err != nil {
				return err
			}
			mu.Lock()
			byURL[pr.URL] = pr
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

// buildPullRequest normalizes one raw payload plus its approver set into
// a domain record. A payload missing identity fields counts as a fetch
// failure, matching the whole-or-nothing contract.
func (f *Fetcher) buildPullRequest(ctx context.Context, repo *api.Repository, raw *api.PullRequest) (pullreq.PullRequest, error) {
	if raw.GetHTMLURL() == "" || raw.GetUser().GetLogin() == "" || raw.GetCreatedAt().IsZero() {
		return pullreq.PullRequest{}, fmt.Errorf("pull request payload for %s is missing required fields", repo.GetName())
	}

	approvers, err := f.fetchApprovers(ctx, repo.GetName(), raw.GetNumber())
	if err != nil {
		return pullreq.PullRequest{}, err
	}

	// Fork PRs report the head repository name; fall back to the base
	// repository when the head side is gone.
	name := raw.GetHead().GetRepo().GetName()
	if name == "" {
		name = repo.GetName()
	}

	return pullreq.PullRequest{
		Repo:      name,
		Title:     raw.GetTitle(),
		URL:       raw.GetHTMLURL(),
		IsDraft:   raw.GetDraft(),
		CreatedBy: raw.GetUser().GetLogin(),
		CreatedAt: raw.GetCreatedAt().Time.UTC(),
		Approvers: approvers,
	}, nil
}

// fetchApprovers returns the deduplicated logins whose latest review
// submission on the pull request is in the APPROVED state.
func (f *Fetcher) fetchApprovers(ctx context.Context, repo string, number int) ([]string, error) {
	reviews, _, err := f.client.PullRequests.ListReviews(ctx, f.org, repo, number, nil)
	if err != nil {
		return nil, err
	}
	var logins []string
	for _, r := range reviews {
		if r.GetState() == "APPROVED" {
			logins = append(logins, r.GetUser().GetLogin())
		}
	}
	return pullreq.NewApproverSet(logins), nil
}
