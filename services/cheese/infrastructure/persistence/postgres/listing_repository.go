package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/cheeseshop/pkg/database"
	"github.com/ghuser/cheeseshop/pkg/events"
	cheesedomain "github.com/ghuser/cheeseshop/services/cheese/domain"
	domainevents "github.com/ghuser/cheeseshop/services/cheese/domain/events"
	"github.com/ghuser/cheeseshop/services/cheese/domain/models"
	"github.com/ghuser/cheeseshop/services/cheese/domain/repositories"
	"github.com/ghuser/cheeseshop/services/cheese/infrastructure/persistence/postgres/db"
)

// CheeseListingRepository implements repositories.CheeseListingRepository
// against PostgreSQL. Writes publish a domain event in the same transaction.
type CheeseListingRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewCheeseListingRepository returns a repository backed by database. A nil
// bus disables event publishing.
func NewCheeseListingRepository(database *database.Database, bus *events.EventBus) *CheeseListingRepository {
	return &CheeseListingRepository{db: database, bus: bus}
}

var _ repositories.CheeseListingRepository = (*CheeseListingRepository)(nil)

// Save inserts a listing, assigns the generated id and publishes
// cheese_listing.created.
func (r *CheeseListingRepository) Save(ctx context.Context, listing *models.CheeseListing) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		id, err := q.InsertCheeseListing(ctx, db.InsertCheeseListingParams{
			Title:       listing.Title(),
			Description: listing.Description(),
			Price:       listing.Price(),
			CreatedAt:   listing.CreatedAt(),
			IsPublished: listing.IsPublished(),
			OwnerID:     listing.OwnerID(),
		})
		if err != nil {
			return fmt.Errorf("insert cheese listing: %w", err)
		}
		if err := listing.AssignID(id); err != nil {
			return fmt.Errorf("assign cheese listing id: %w", err)
		}

		return r.publish(ctx, tx, domainevents.TopicCheeseListingCreated, listingEvent(listing))
	})
}

// GetByID returns ErrCheeseListingNotFound when no row matches.
func (r *CheeseListingRepository) GetByID(ctx context.Context, id int64) (*models.CheeseListing, error) {
	row, err := db.New(r.db.DB()).GetCheeseListingByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cheesedomain.ErrCheeseListingNotFound
		}
		return nil, fmt.Errorf("query cheese listing: %w", err)
	}
	return rowToListing(row), nil
}

// Find returns one page of listings matching filter, newest id last, and
// the total number of matches.
func (r *CheeseListingRepository) Find(ctx context.Context, filter repositories.ListingFilter, opts repositories.QueryOpts) ([]*models.CheeseListing, int, error) {
	conn := r.db.DB()
	where, args := listingWhere(filter)

	var total int
	countSQL := "SELECT COUNT(*) FROM cheese_listings " + where
	if err := conn.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count cheese listings: %w", err)
	}

	selectSQL := fmt.Sprintf("SELECT %s FROM cheese_listings %s ORDER BY id LIMIT $%d OFFSET $%d",
		db.CheeseListingColumns, where, len(args)+1, len(args)+2)
	rows, err := conn.QueryContext(ctx, selectSQL, append(args, opts.Limit, opts.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query cheese listings: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	listings := make([]*models.CheeseListing, 0, opts.Limit)
	for rows.Next() {
		row, err := db.ScanCheeseListing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan cheese listing: %w", err)
		}
		listings = append(listings, rowToListing(row))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate cheese listings: %w", err)
	}
	return listings, total, nil
}

// Update writes the client-editable columns and publishes
// cheese_listing.updated. The publication flag is read back from the row so
// a concurrent publish is neither overwritten nor misreported.
func (r *CheeseListingRepository) Update(ctx context.Context, listing *models.CheeseListing) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		published, err := db.New(tx).UpdateCheeseListing(ctx, db.UpdateCheeseListingParams{
			ID:          listing.ID(),
			Title:       listing.Title(),
			Description: listing.Description(),
			Price:       listing.Price(),
			OwnerID:     listing.OwnerID(),
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return cheesedomain.ErrCheeseListingNotFound
			}
			return fmt.Errorf("update cheese listing: %w", err)
		}
		listing.SetPublished(published)

		return r.publish(ctx, tx, domainevents.TopicCheeseListingUpdated, listingEvent(listing))
	})
}

// SetPublished writes only is_published and publishes cheese_listing.updated
// with the row as stored.
func (r *CheeseListingRepository) SetPublished(ctx context.Context, id int64, published bool) (*models.CheeseListing, error) {
	var listing *models.CheeseListing
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).SetCheeseListingPublished(ctx, id, published)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return cheesedomain.ErrCheeseListingNotFound
			}
			return fmt.Errorf("set cheese listing published: %w", err)
		}
		listing = rowToListing(row)

		return r.publish(ctx, tx, domainevents.TopicCheeseListingUpdated, listingEvent(listing))
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// Delete removes a listing and publishes cheese_listing.deleted.
func (r *CheeseListingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		n, err := db.New(tx).DeleteCheeseListing(ctx, id)
		if err != nil {
			return fmt.Errorf("delete cheese listing: %w", err)
		}
		if n == 0 {
			return cheesedomain.ErrCheeseListingNotFound
		}

		return r.publish(ctx, tx, domainevents.TopicCheeseListingDeleted, domainevents.CheeseListingDeletedEvent{
			EventID:    uuid.New(),
			Version:    domainevents.CheeseListingEventVersion,
			ListingID:  id,
			OccurredAt: time.Now().UTC(),
		})
	})
}

func (r *CheeseListingRepository) publish(ctx context.Context, tx *sql.Tx, topic string, event any) error {
	if r.bus == nil {
		return nil
	}
	return r.bus.PublishInTx(ctx, tx, topic, event, domainevents.CheeseListingEventVersion)
}

func listingEvent(l *models.CheeseListing) domainevents.CheeseListingEvent {
	return domainevents.CheeseListingEvent{
		EventID:     uuid.New(),
		Version:     domainevents.CheeseListingEventVersion,
		ListingID:   l.ID(),
		OwnerID:     l.OwnerID(),
		Title:       l.Title(),
		Description: l.Description(),
		Price:       l.Price(),
		IsPublished: l.IsPublished(),
		CreatedAt:   l.CreatedAt(),
		OccurredAt:  time.Now().UTC(),
	}
}

func rowToListing(row db.CheeseCheeseListing) *models.CheeseListing {
	return models.RestoreCheeseListing(
		row.ID,
		row.Title,
		row.Description,
		row.Price,
		row.CreatedAt,
		row.IsPublished,
		row.OwnerID,
	)
}
