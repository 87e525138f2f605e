package repositories

import (
	"context"
	"math"

	"github.com/ghuser/cheeseshop/services/cheese/domain/models"
)

// PageSize is the fixed number of listings per collection page.
const PageSize = 10

// MaxPage is the highest page whose offset fits in an int.
const MaxPage = math.MaxInt / PageSize

// PriceRange bounds a price filter in cents. Nil bounds are ignored.
type PriceRange struct {
	GT  *int64
	GTE *int64
	LT  *int64
	LTE *int64
}

// IsZero reports whether no bound is set.
func (r PriceRange) IsZero() bool {
	return r.GT == nil && r.GTE == nil && r.LT == nil && r.LTE == nil
}

// ListingFilter narrows a collection query. Zero values match everything.
type ListingFilter struct {
	IsPublished *bool
	Title       string // partial, case-insensitive
	Description string // partial, case-insensitive
	Price       PriceRange
}

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// CheeseListingRepository is the persistence port for the CheeseListing aggregate.
// The domain layer owns this interface; infrastructure implements it.
type CheeseListingRepository interface {
	// Save inserts a new listing and assigns its id.
	Save(ctx context.Context, listing *models.CheeseListing) error
	GetByID(ctx context.Context, id int64) (*models.CheeseListing, error)

	// Find returns the listings matching filter plus the total match count
	// ignoring pagination.
	Find(ctx context.Context, filter ListingFilter, opts QueryOpts) ([]*models.CheeseListing, int, error)

	// Update persists the client-editable fields of an existing listing and
	// refreshes its publication flag from storage.
	Update(ctx context.Context, listing *models.CheeseListing) error

	// SetPublished changes only the publication flag and returns the stored
	// listing.
	SetPublished(ctx context.Context, id int64, published bool) (*models.CheeseListing, error)

	// Delete removes a listing. Returns ErrCheeseListingNotFound when absent.
	Delete(ctx context.Context, id int64) error
}
