// Package controller wires the fetch layer, the snapshot cache and the
// ordering pipeline behind the item-building surface consumed by
// presentation layers.
package controller

import (
	"context"
	"time"

	"github.com/jvaz/prdeck/internal/cache"
	"github.com/jvaz/prdeck/internal/logging"
	"github.com/jvaz/prdeck/internal/pullreq"
)

// Source produces the raw pull request records for one fetch cycle.
type Source interface {
	FetchAll(ctx context.Context) ([]pullreq.PullRequest, error)
}

// Controller owns one TTL-cached snapshot of the organization's pull
// requests, partitioned for the configured user.
type Controller struct {
	user  string
	cache *cache.TTL
	log   logging.Logger
}

// New builds a Controller refreshing from source at most once per ttl.
func New(source Source, user string, ttl time.Duration, log logging.Logger) *Controller {
	c := &Controller{user: user, log: log.WithName("controller")}
	c.cache = cache.New(ttl, func(ctx context.Context) (cache.Snapshot, error) {
		prs, err := source.FetchAll(ctx)
		if err != nil {
			return cache.Snapshot{}, err
		}
		open, approved := pullreq.Partition(prs, user)
		c.log.Debug("snapshot refreshed", "open", len(open), "approved", len(approved))
		return cache.Snapshot{Open: open, Approved: approved}, nil
	})
	return c
}

// Clock overrides the cache time source, for tests.
func (c *Controller) Clock(now func() time.Time) {
	c.cache.WithClock(now)
}

// BuildItems renders the requested view as display items, applying the
// optional predicate to each record. Item order follows the snapshot
// order. When includeApprovedButton is set and approved pull requests
// exist, one synthetic entry pointing at the approved view is appended.
// On fetch failure the error is returned and no items are produced; the
// caller renders ErrorItem in place of the list.
func (c *Controller) BuildItems(ctx context.Context, prType PRType, predicate pullreq.Predicate, includeApprovedButton bool) ([]DisplayItem, error) {
	snap, err := c.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	relevant := snap.Open
	if prType == PRTypeApproved {
		relevant = snap.Approved
	}

	items := make([]DisplayItem, 0, len(relevant)+1)
	for _, pr := range relevant {
		if predicate != nil && !predicate(pr) {
			continue
		}
		items = append(items, DisplayItem{
			Title:    pr.Title,
			Subtitle: pr.Repo + "\n" + pr.URL,
			Icon:     c.iconFor(pr.CreatedBy, prType),
			Primary:  Action{Kind: ActionOpenURL, URL: pr.URL},
			Alt: Action{Kind: ActionEmit, Event: Event{
				Kind:   EventMultiselect,
				PRType: prType,
				URL:    pr.URL,
			}},
		})
	}

	if includeApprovedButton && len(snap.Approved) > 0 {
		items = append(items, approvedButton(len(snap.Approved)))
	}
	return items, nil
}

func (c *Controller) iconFor(author string, prType PRType) IconVariant {
	own := author == c.user
	switch {
	case own && prType == PRTypeApproved:
		return IconOwnApproved
	case own:
		return IconOwn
	case prType == PRTypeApproved:
		return IconApproved
	default:
		return IconNormal
	}
}
