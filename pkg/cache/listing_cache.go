package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultListingCacheTTL applies when LISTING_CACHE_TTL is unset.
	DefaultListingCacheTTL = time.Hour

	listingKeyPrefix = "cheese_listing"
)

// ErrMiss is returned by Get when the listing is not cached.
var ErrMiss = errors.New("cache: miss")

// CachedListing holds the stored columns of a cheese listing. Derived
// values are computed at read time and never cached.
type CachedListing struct {
	ID          int64
	Title       string
	Description string
	Price       int64
	CreatedAt   time.Time
	IsPublished bool
	OwnerID     int64
}

// ListingCache stores listings as Redis hashes under "cheese_listing:{id}".
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache returns a ListingCache backed by r, expiring entries after
// the TTL r was configured with.
func NewListingCache(r *RedisClient) *ListingCache {
	ttl := r.listingTTL
	if ttl <= 0 {
		ttl = DefaultListingCacheTTL
	}
	return &ListingCache{client: r.Client(), ttl: ttl}
}

// Get returns ErrMiss when the key is absent or expired.
func (c *ListingCache) Get(ctx context.Context, id int64) (*CachedListing, error) {
	vals, err := c.client.HGetAll(ctx, listingKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, ErrMiss
	}
	return decodeListing(vals)
}

// Set writes all fields and the TTL in one pipeline.
func (c *ListingCache) Set(ctx context.Context, l *CachedListing) error {
	key := listingKey(l.ID)
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, encodeListing(l))
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete evicts a listing. Evicting an absent key is not an error.
func (c *ListingCache) Delete(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, listingKey(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func listingKey(id int64) string {
	return listingKeyPrefix + ":" + strconv.FormatInt(id, 10)
}

func encodeListing(l *CachedListing) map[string]any {
	return map[string]any{
		"id":           strconv.FormatInt(l.ID, 10),
		"title":        l.Title,
		"description":  l.Description,
		"price":        strconv.FormatInt(l.Price, 10),
		"created_at":   l.CreatedAt.UTC().Format(time.RFC3339Nano),
		"is_published": strconv.FormatBool(l.IsPublished),
		"owner_id":     strconv.FormatInt(l.OwnerID, 10),
	}
}

func decodeListing(vals map[string]string) (*CachedListing, error) {
	id, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	price, err := strconv.ParseInt(vals["price"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse price: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	published, err := strconv.ParseBool(vals["is_published"])
	if err != nil {
		return nil, fmt.Errorf("cache parse is_published: %w", err)
	}
	owner, err := strconv.ParseInt(vals["owner_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse owner_id: %w", err)
	}

	return &CachedListing{
		ID:          id,
		Title:       vals["title"],
		Description: vals["description"],
		Price:       price,
		CreatedAt:   createdAt,
		IsPublished: published,
		OwnerID:     owner,
	}, nil
}
