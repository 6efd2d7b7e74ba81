package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-logr/logr"
	api "github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvaz/prdeck/internal/logging"
	"github.com/jvaz/prdeck/internal/pullreq"
)

type fakeAPI struct {
	mux         *http.ServeMux
	srv         *httptest.Server
	repoHits    atomic.Int64
	failRepos   bool
	failReviews bool
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{mux: http.NewServeMux()}
	f.srv = httptest.NewServer(f.mux)
	t.Cleanup(f.srv.Close)

	f.mux.HandleFunc("/api/v3/orgs/acme/repos", func(w http.ResponseWriter, r *http.Request) {
		f.repoHits.Add(1)
		if f.failRepos {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		writeJSON(w, `[
			{"name": "alpha", "owner": {"login": "acme"}},
			{"name": "beta", "owner": {"login": "acme"}}
		]`)
	})
	f.mux.HandleFunc("/api/v3/repos/acme/alpha/pulls", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[
			{
				"number": 1,
				"title": "Add snapshot cache",
				"html_url": "https://ghe.example.com/acme/alpha/pull/1",
				"draft": false,
				"user": {"login": "bob"},
				"created_at": "2024-05-01T10:00:00Z",
				"head": {"repo": {"name": "alpha"}}
			},
			{
				"number": 2,
				"title": "WIP: rework fetch layer",
				"html_url": "https://ghe.example.com/acme/alpha/pull/2",
				"draft": true,
				"user": {"login": "alice"},
				"created_at": "2024-05-01T11:00:00Z",
				"head": {"repo": {"name": "alpha"}}
			}
		]`)
	})
	f.mux.HandleFunc("/api/v3/repos/acme/beta/pulls", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[]`)
	})
	f.mux.HandleFunc("/api/v3/repos/acme/alpha/pulls/1/reviews", func(w http.ResponseWriter, r *http.Request) {
		if f.failReviews {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		writeJSON(w, `[
			{"state": "APPROVED", "user": {"login": "carol"}},
			{"state": "APPROVED", "user": {"login": "carol"}},
			{"state": "CHANGES_REQUESTED", "user": {"login": "dan"}}
		]`)
	})
	f.mux.HandleFunc("/api/v3/repos/acme/alpha/pulls/2/reviews", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[]`)
	})
	return f
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

func (f *fakeAPI) client(t *testing.T) *api.Client {
	t.Helper()
	c, err := api.NewClient(nil).WithEnterpriseURLs(f.srv.URL+"/api/v3", f.srv.URL+"/api/uploads")
	require.NoError(t, err)
	return c
}

func newTestFetcher(t *testing.T, f *fakeAPI) *Fetcher {
	t.Helper()
	return NewFetcher(f.client(t), "acme", 4, logging.New(logr.Discard()))
}

func TestFetchAllAggregatesAcrossRepositories(t *testing.T) {
	f := newFakeAPI(t)
	fetcher := newTestFetcher(t, f)

	prs, err := fetcher.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, prs, 2)

	byURL := map[string]pullreq.PullRequest{}
	for _, pr := range prs {
		byURL[pr.URL] = pr
	}

	got, ok := byURL["https://ghe.example.com/acme/alpha/pull/1"]
	require.True(t, ok)
	assert.Equal(t, "alpha", got.Repo)
	assert.Equal(t, "Add snapshot cache", got.Title)
	assert.Equal(t, "bob", got.CreatedBy)
	assert.False(t, got.IsDraft)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), got.CreatedAt)
	// A reviewer re-approving counts once; non-APPROVED states are dropped.
	assert.Equal(t, []string{"carol"}, got.Approvers)

	draft, ok := byURL["https://ghe.example.com/acme/alpha/pull/2"]
	require.True(t, ok)
	assert.True(t, draft.IsDraft, "drafts are kept in raw records; the pipeline drops them")
	assert.Empty(t, draft.Approvers)
}

func TestFetchAllMemoizesRepositoryList(t *testing.T) {
	f := newFakeAPI(t)
	fetcher := newTestFetcher(t, f)

	_, err := fetcher.FetchAll(context.Background())
	require.NoError(t, err)
	_, err = fetcher.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.repoHits.Load(), "repository list is fetched once per process")
}

func TestFetchAllIsWholeOrNothing(t *testing.T) {
	f := newFakeAPI(t)
	f.failReviews = true
	fetcher := newTestFetcher(t, f)

	// One failing review lookup aborts the whole refresh; no partial
	// result comes back.
	prs, err := fetcher.FetchAll(context.Background())
	require.Error(t, err)
	assert.Nil(t, prs)

	var fetchErr *FetchError
	assert.True(t, errors.As(err, &fetchErr))
}

func TestFetchAllWrapsFailuresAsFetchError(t *testing.T) {
	f := newFakeAPI(t)
	f.failRepos = true
	fetcher := newTestFetcher(t, f)

	_, err := fetcher.FetchAll(context.Background())
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "Error getting Pull Requests", fetchErr.Title)
	assert.Equal(t, "Check your connectivity, GitHub URL and access token", fetchErr.Description)
}
