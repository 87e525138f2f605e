package subscribers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/ghuser/cheeseshop/pkg/cache"
	"github.com/ghuser/cheeseshop/pkg/events"
	"github.com/ghuser/cheeseshop/pkg/logger"
	"github.com/ghuser/cheeseshop/services/cheese/application/subscribers"
	domainevents "github.com/ghuser/cheeseshop/services/cheese/domain/events"
)

type stubCache struct {
	entries map[int64]cache.CachedListing
	deleted []int64
	err     error
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[int64]cache.CachedListing)}
}

func (c *stubCache) Get(_ context.Context, id int64) (*cache.CachedListing, error) {
	e, ok := c.entries[id]
	if !ok {
		return nil, cache.ErrMiss
	}
	return &e, nil
}

func (c *stubCache) Set(_ context.Context, l *cache.CachedListing) error {
	if c.err != nil {
		return c.err
	}
	c.entries[l.ID] = *l
	return nil
}

func (c *stubCache) Delete(_ context.Context, id int64) error {
	if c.err != nil {
		return c.err
	}
	delete(c.entries, id)
	c.deleted = append(c.deleted, id)
	return nil
}

func listingMessage(t *testing.T, evt any, version int) *message.Message {
	t.Helper()
	msg, err := events.NewJSONMessage(evt, version)
	if err != nil {
		t.Fatalf("NewJSONMessage: %v", err)
	}
	return msg
}

func TestHandleCreated_WarmsCache(t *testing.T) {
	c := newStubCache()
	w := subscribers.NewListingCacheWarmer(c, logger.Discard())
	createdAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	evt := domainevents.CheeseListingEvent{
		EventID:     uuid.New(),
		Version:     domainevents.CheeseListingEventVersion,
		ListingID:   7,
		OwnerID:     2,
		Title:       "Comté",
		Description: "Nutty<br />\nand firm",
		Price:       1800,
		IsPublished: true,
		CreatedAt:   createdAt,
		OccurredAt:  createdAt,
	}
	if err := w.HandleCreated(context.Background(), listingMessage(t, evt, domainevents.CheeseListingEventVersion)); err != nil {
		t.Fatalf("HandleCreated: %v", err)
	}

	want := cache.CachedListing{
		ID:          7,
		Title:       "Comté",
		Description: "Nutty<br />\nand firm",
		Price:       1800,
		CreatedAt:   createdAt,
		IsPublished: true,
		OwnerID:     2,
	}
	if diff := cmp.Diff(want, c.entries[7]); diff != "" {
		t.Errorf("cached entry mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleCreated_RejectsUnknownVersion(t *testing.T) {
	c := newStubCache()
	w := subscribers.NewListingCacheWarmer(c, logger.Discard())

	msg := listingMessage(t, domainevents.CheeseListingEvent{ListingID: 7}, domainevents.CheeseListingEventVersion+1)
	if err := w.HandleCreated(context.Background(), msg); err == nil {
		t.Fatal("expected error for unsupported event version")
	}
	if len(c.entries) != 0 {
		t.Errorf("cache written despite rejected event: %v", c.entries)
	}
}

func TestHandleCreated_CacheFailureIsNotRetried(t *testing.T) {
	c := newStubCache()
	c.err = errors.New("redis down")
	w := subscribers.NewListingCacheWarmer(c, logger.Discard())

	msg := listingMessage(t, domainevents.CheeseListingEvent{ListingID: 7}, domainevents.CheeseListingEventVersion)
	if err := w.HandleCreated(context.Background(), msg); err != nil {
		t.Fatalf("HandleCreated = %v, want nil", err)
	}
}

func TestHandleDeleted_Evicts(t *testing.T) {
	c := newStubCache()
	c.entries[7] = cache.CachedListing{ID: 7}
	w := subscribers.NewListingCacheWarmer(c, logger.Discard())

	evt := domainevents.CheeseListingDeletedEvent{
		EventID:   uuid.New(),
		Version:   domainevents.CheeseListingEventVersion,
		ListingID: 7,
	}
	if err := w.HandleDeleted(context.Background(), listingMessage(t, evt, domainevents.CheeseListingEventVersion)); err != nil {
		t.Fatalf("HandleDeleted: %v", err)
	}
	if _, ok := c.entries[7]; ok {
		t.Error("entry still cached after delete event")
	}
}

func TestHandleUpdated_EvictsWithoutRewarming(t *testing.T) {
	c := newStubCache()
	w := subscribers.NewListingCacheWarmer(c, logger.Discard())
	ctx := context.Background()

	deleted := domainevents.CheeseListingDeletedEvent{
		EventID:   uuid.New(),
		Version:   domainevents.CheeseListingEventVersion,
		ListingID: 7,
	}
	updated := domainevents.CheeseListingEvent{
		EventID:   uuid.New(),
		Version:   domainevents.CheeseListingEventVersion,
		ListingID: 7,
		Title:     "Comté",
	}

	// The delete is handled first; the stale update arrives afterwards.
	if err := w.HandleDeleted(ctx, listingMessage(t, deleted, domainevents.CheeseListingEventVersion)); err != nil {
		t.Fatalf("HandleDeleted: %v", err)
	}
	if err := w.HandleUpdated(ctx, listingMessage(t, updated, domainevents.CheeseListingEventVersion)); err != nil {
		t.Fatalf("HandleUpdated: %v", err)
	}
	if _, err := c.Get(ctx, 7); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("deleted listing cached again: err = %v", err)
	}
	if diff := cmp.Diff([]int64{7, 7}, c.deleted); diff != "" {
		t.Errorf("evictions mismatch (-want +got):\n%s", diff)
	}
}

func TestTopics(t *testing.T) {
	w := subscribers.NewListingCacheWarmer(newStubCache(), logger.Discard())
	topics := w.Topics()
	for _, topic := range []string{
		domainevents.TopicCheeseListingCreated,
		domainevents.TopicCheeseListingUpdated,
		domainevents.TopicCheeseListingDeleted,
	} {
		if topics[topic] == nil {
			t.Errorf("no handler for %s", topic)
		}
	}
}
