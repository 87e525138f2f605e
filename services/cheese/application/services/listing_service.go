package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ghuser/cheeseshop/pkg/cache"
	"github.com/ghuser/cheeseshop/pkg/logger"
	"github.com/ghuser/cheeseshop/pkg/telemetry"
	cheesedomain "github.com/ghuser/cheeseshop/services/cheese/domain"
	"github.com/ghuser/cheeseshop/services/cheese/domain/models"
	"github.com/ghuser/cheeseshop/services/cheese/domain/repositories"
	"github.com/ghuser/cheeseshop/services/cheese/domain/views"
)

// OwnerNotFoundMessage is the field message for an owner that is not a user.
const OwnerNotFoundMessage = "This user does not exist."

const cacheWarmTimeout = 2 * time.Second

// ListingCache is the read cache consulted by ListingService.Get.
type ListingCache interface {
	Get(ctx context.Context, id int64) (*cache.CachedListing, error)
	Set(ctx context.Context, l *cache.CachedListing) error
	Delete(ctx context.Context, id int64) error
}

// ListingPage is one page of a filtered collection.
type ListingPage struct {
	Listings   []*models.CheeseListing
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// ListingService runs the cheese listing use cases. Events are published by
// the repository in the write transaction; the cache is only a read path.
type ListingService struct {
	listings repositories.CheeseListingRepository
	users    repositories.UserRepository
	cache    ListingCache
	metrics  *telemetry.ListingMetrics
	log      logger.Logger
}

// NewListingService wires a ListingService. cache and metrics may be nil.
func NewListingService(
	listings repositories.CheeseListingRepository,
	users repositories.UserRepository,
	listingCache ListingCache,
	metrics *telemetry.ListingMetrics,
	log logger.Logger,
) *ListingService {
	return &ListingService{
		listings: listings,
		users:    users,
		cache:    listingCache,
		metrics:  metrics,
		log:      log,
	}
}

// Create validates v, then persists a new listing built from it.
func (s *ListingService) Create(ctx context.Context, v *views.WriteView) (*models.CheeseListing, error) {
	if err := s.validate(ctx, "create", v, 0); err != nil {
		return nil, err
	}

	listing := models.NewCheeseListing(*v.Title)
	views.Apply(v, listing)

	if err := s.listings.Save(ctx, listing); err != nil {
		return nil, fmt.Errorf("save cheese listing: %w", err)
	}
	s.metrics.ListingCreated(ctx)
	return listing, nil
}

// Get returns a listing, preferring the cache. A database hit warms the
// cache in the background.
func (s *ListingService) Get(ctx context.Context, id int64) (*models.CheeseListing, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return FromCached(cached), nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.log.WarnContext(ctx, "listing cache read failed", "listing_id", id, "error", err)
		}
	}

	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get cheese listing: %w", err)
	}

	if s.cache != nil {
		entry := ToCached(listing)
		go func() {
			warmCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWarmTimeout)
			defer cancel()
			if err := s.cache.Set(warmCtx, entry); err != nil {
				s.log.WarnContext(warmCtx, "listing cache warm failed", "listing_id", entry.ID, "error", err)
			}
		}()
	}
	return listing, nil
}

// List returns the given 1-based page of listings matching filter. Pages
// are clamped to [1, repositories.MaxPage].
func (s *ListingService) List(ctx context.Context, filter repositories.ListingFilter, page int) (*ListingPage, error) {
	page = min(max(page, 1), repositories.MaxPage)
	opts := repositories.QueryOpts{
		Limit:  repositories.PageSize,
		Offset: (page - 1) * repositories.PageSize,
	}
	listings, total, err := s.listings.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list cheese listings: %w", err)
	}
	return &ListingPage{
		Listings:   listings,
		Page:       page,
		PageSize:   repositories.PageSize,
		Total:      total,
		TotalPages: (total + repositories.PageSize - 1) / repositories.PageSize,
	}, nil
}

// Update loads listing id, lets merge overlay the request onto its write
// view, validates the result and saves it. PUT and PATCH both use this.
// An error from merge is reported as ErrMalformedPayload.
func (s *ListingService) Update(ctx context.Context, id int64, merge func(*views.WriteView) error) (*models.CheeseListing, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get cheese listing: %w", err)
	}

	v := views.WriteViewOf(listing)
	if err := merge(v); err != nil {
		return nil, fmt.Errorf("%w: %w", cheesedomain.ErrMalformedPayload, err)
	}
	if err := s.validate(ctx, "update", v, listing.OwnerID()); err != nil {
		return nil, err
	}

	views.Apply(v, listing)
	if err := s.listings.Update(ctx, listing); err != nil {
		return nil, fmt.Errorf("update cheese listing: %w", err)
	}
	s.evict(ctx, id)
	return listing, nil
}

// SetPublished flips the system-managed publication flag. Only that column
// is written, so a concurrent Update keeps its own fields and this flag.
func (s *ListingService) SetPublished(ctx context.Context, id int64, published bool) (*models.CheeseListing, error) {
	listing, err := s.listings.SetPublished(ctx, id, published)
	if err != nil {
		return nil, fmt.Errorf("set cheese listing published: %w", err)
	}
	s.evict(ctx, id)
	return listing, nil
}

// Delete removes a listing. Returns ErrCheeseListingNotFound when absent.
func (s *ListingService) Delete(ctx context.Context, id int64) error {
	if err := s.listings.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete cheese listing: %w", err)
	}
	s.evict(ctx, id)
	return nil
}

// validate runs the field rules and, when the owner is new or changed,
// checks that it names an existing user.
func (s *ListingService) validate(ctx context.Context, op string, v *views.WriteView, currentOwner int64) error {
	errs := views.Validate(v)
	if _, bad := errs["owner"]; !bad && *v.Owner != currentOwner {
		exists, err := s.users.Exists(ctx, *v.Owner)
		if err != nil {
			return fmt.Errorf("check owner: %w", err)
		}
		if !exists {
			if errs == nil {
				errs = make(views.FieldErrors)
			}
			errs["owner"] = OwnerNotFoundMessage
		}
	}
	if errs == nil {
		return nil
	}

	fields := make([]string, 0, len(errs))
	for name := range errs {
		fields = append(fields, name)
	}
	s.metrics.ValidationFailed(ctx, op, fields)
	return errs
}

// evict drops a stale cache entry. The worker re-warms it from the event.
func (s *ListingService) evict(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "listing cache evict failed", "listing_id", id, "error", err)
	}
}

// ToCached returns the cache entry for l.
func ToCached(l *models.CheeseListing) *cache.CachedListing {
	return &cache.CachedListing{
		ID:          l.ID(),
		Title:       l.Title(),
		Description: l.Description(),
		Price:       l.Price(),
		CreatedAt:   l.CreatedAt(),
		IsPublished: l.IsPublished(),
		OwnerID:     l.OwnerID(),
	}
}

// FromCached restores a listing from its cache entry.
func FromCached(c *cache.CachedListing) *models.CheeseListing {
	return models.RestoreCheeseListing(c.ID, c.Title, c.Description, c.Price, c.CreatedAt, c.IsPublished, c.OwnerID)
}
