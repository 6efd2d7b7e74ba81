// Package cache provides the time-bounded snapshot cache sitting between
// the fetch layer and the presentation surface.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jvaz/prdeck/internal/pullreq"
)

// Snapshot is the result of one successful fetch cycle, already ordered
// and partitioned. It is replaced wholesale on refresh, never mutated.
type Snapshot struct {
	Open     []pullreq.PullRequest
	Approved []pullreq.PullRequest
}

// FetchFunc produces a fresh snapshot, typically by running the full
// organization fetch through the pipeline.
type FetchFunc func(ctx context.Context) (Snapshot, error)

// TTL serves a cached snapshot while it is younger than the configured
// ttl and triggers a synchronous refresh otherwise. A failed refresh
// leaves the stored entry untouched; the error is returned for that call
// only and the next call retries. Concurrent callers during a refresh
// block until it completes.
type TTL struct {
	ttl   time.Duration
	fetch FetchFunc
	now   func() time.Time

	mu        sync.Mutex
	fetchedAt time.Time
	snapshot  Snapshot
	valid     bool
}

// New returns a TTL cache with no entry. The first Get always fetches.
func New(ttl time.Duration, fetch FetchFunc) *TTL {
	return &TTL{ttl: ttl, fetch: fetch, now: time.Now}
}

// WithClock overrides the time source, for tests exercising freshness
// boundaries deterministically.
func (c *TTL) WithClock(now func() time.Time) *TTL {
	c.now = now
	return c
}

// Get returns the cached snapshot if fresh, otherwise refreshes.
func (c *TTL) Get(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.valid && now.Sub(c.fetchedAt) < c.ttl {
		return c.snapshot, nil
	}

	snap, err := c.fetch(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	c.fetchedAt = now
	c.snapshot = snap
	c.valid = true
	return snap, nil
}
