package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the cheese listing repository.
const (
	TopicCheeseListingCreated = "cheese_listing.created"
	TopicCheeseListingUpdated = "cheese_listing.updated"
	TopicCheeseListingDeleted = "cheese_listing.deleted"
)

// CheeseListingEventVersion is the schema version of CheeseListingEvent.
const CheeseListingEventVersion = 1

// CheeseListingEvent is published after a listing is created or updated.
// It carries stored fields only; derived fields are computed by readers.
type CheeseListingEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`
	ListingID   int64     `json:"listing_id"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// CheeseListingDeletedEvent is published after a listing is removed.
type CheeseListingDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ListingID  int64     `json:"listing_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
