// Package subscribers holds the cheese context's domain event handlers run
// by the worker process.
package subscribers

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/cheeseshop/pkg/cache"
	"github.com/ghuser/cheeseshop/pkg/events"
	"github.com/ghuser/cheeseshop/pkg/logger"
	appsvcs "github.com/ghuser/cheeseshop/services/cheese/application/services"
	domainevents "github.com/ghuser/cheeseshop/services/cheese/domain/events"
)

// Handler processes one message. The event bus retries it on error, so
// handlers must be idempotent.
type Handler func(context.Context, *message.Message) error

// ListingCacheWarmer keeps the Redis listing cache in step with listing events.
type ListingCacheWarmer struct {
	cache appsvcs.ListingCache
	log   logger.Logger
}

// NewListingCacheWarmer returns a ListingCacheWarmer writing to c.
func NewListingCacheWarmer(c appsvcs.ListingCache, log logger.Logger) *ListingCacheWarmer {
	return &ListingCacheWarmer{cache: c, log: log}
}

// Topics maps each listing topic to its handler.
func (w *ListingCacheWarmer) Topics() map[string]Handler {
	return map[string]Handler{
		domainevents.TopicCheeseListingCreated: w.HandleCreated,
		domainevents.TopicCheeseListingUpdated: w.HandleUpdated,
		domainevents.TopicCheeseListingDeleted: w.HandleDeleted,
	}
}

// HandleCreated caches the listing carried by a created event. Cache
// failures are logged and swallowed; the read path falls back to the
// database.
func (w *ListingCacheWarmer) HandleCreated(ctx context.Context, msg *message.Message) error {
	var evt domainevents.CheeseListingEvent
	if err := events.DecodeJSON(msg, domainevents.CheeseListingEventVersion, &evt); err != nil {
		return err
	}

	entry := &cache.CachedListing{
		ID:          evt.ListingID,
		Title:       evt.Title,
		Description: evt.Description,
		Price:       evt.Price,
		CreatedAt:   evt.CreatedAt,
		IsPublished: evt.IsPublished,
		OwnerID:     evt.OwnerID,
	}
	if err := w.cache.Set(ctx, entry); err != nil {
		w.log.WarnContext(ctx, "listing cache warm failed", "listing_id", evt.ListingID, "error", err)
		return nil
	}
	w.log.InfoContext(ctx, "listing cache warmed", "listing_id", evt.ListingID, "event_id", evt.EventID)
	return nil
}

// HandleUpdated evicts instead of re-warming: an update event handled after
// the listing's delete event must not resurrect it. ListingService.Get
// refills the entry from the database.
func (w *ListingCacheWarmer) HandleUpdated(ctx context.Context, msg *message.Message) error {
	var evt domainevents.CheeseListingEvent
	if err := events.DecodeJSON(msg, domainevents.CheeseListingEventVersion, &evt); err != nil {
		return err
	}
	w.evict(ctx, evt.ListingID)
	return nil
}

// HandleDeleted evicts the deleted listing.
func (w *ListingCacheWarmer) HandleDeleted(ctx context.Context, msg *message.Message) error {
	var evt domainevents.CheeseListingDeletedEvent
	if err := events.DecodeJSON(msg, domainevents.CheeseListingEventVersion, &evt); err != nil {
		return err
	}
	w.evict(ctx, evt.ListingID)
	return nil
}

func (w *ListingCacheWarmer) evict(ctx context.Context, id int64) {
	if err := w.cache.Delete(ctx, id); err != nil {
		w.log.WarnContext(ctx, "listing cache evict failed", "listing_id", id, "error", err)
	}
}
