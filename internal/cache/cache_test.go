package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvaz/prdeck/internal/pullreq"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func snapshotWith(title string) Snapshot {
	return Snapshot{Open: []pullreq.PullRequest{{Title: title, URL: "u-" + title}}}
}

func TestGetServesFreshSnapshotWithoutRefetch(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	calls := 0
	c := New(time.Minute, func(ctx context.Context) (Snapshot, error) {
		calls++
		return snapshotWith("first"), nil
	}).WithClock(clock.now)

	first, err := c.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	clock.advance(59 * time.Second)
	second, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "fresh snapshot must not trigger a fetch")
	assert.Equal(t, first, second)
}

func TestGetRefreshesOnceStale(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	calls := 0
	c := New(time.Minute, func(ctx context.Context) (Snapshot, error) {
		calls++
		if calls == 1 {
			return snapshotWith("first"), nil
		}
		return snapshotWith("second"), nil
	}).WithClock(clock.now)

	_, err := c.Get(context.Background())
	require.NoError(t, err)

	clock.advance(time.Minute)
	snap, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "second", snap.Open[0].Title)
}

func TestGetKeepsEntryOnFailedRefresh(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	calls := 0
	c := New(time.Minute, func(ctx context.Context) (Snapshot, error) {
		calls++
		switch calls {
		case 2:
			return Snapshot{}, errors.New("boom")
		default:
			return snapshotWith("ok"), nil
		}
	}).WithClock(clock.now)

	_, err := c.Get(context.Background())
	require.NoError(t, err)

	// The failed refresh surfaces its error for that call only and the
	// stored entry stays stale, so the next call retries.
	clock.advance(time.Minute)
	_, err = c.Get(context.Background())
	require.Error(t, err)

	snap, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, "ok", snap.Open[0].Title)
}

func TestGetRetriesWhenFirstFetchFails(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	calls := 0
	c := New(time.Minute, func(ctx context.Context) (Snapshot, error) {
		calls++
		if calls == 1 {
			return Snapshot{}, errors.New("boom")
		}
		return snapshotWith("ok"), nil
	}).WithClock(clock.now)

	_, err := c.Get(context.Background())
	require.Error(t, err)

	snap, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", snap.Open[0].Title)
}
