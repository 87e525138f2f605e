package db

import (
	"context"
	"time"
)

// CheeseListingColumns is the select list matching ScanCheeseListing.
const CheeseListingColumns = "id, title, description, price, created_at, is_published, owner_id"

const insertCheeseListing = `
INSERT INTO cheese_listings (title, description, price, created_at, is_published, owner_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

type InsertCheeseListingParams struct {
	Title       string
	Description string
	Price       int64
	CreatedAt   time.Time
	IsPublished bool
	OwnerID     int64
}

func (q *Queries) InsertCheeseListing(ctx context.Context, arg InsertCheeseListingParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, insertCheeseListing,
		arg.Title,
		arg.Description,
		arg.Price,
		arg.CreatedAt,
		arg.IsPublished,
		arg.OwnerID,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getCheeseListingByID = `
SELECT ` + CheeseListingColumns + `
FROM cheese_listings
WHERE id = $1
`

func (q *Queries) GetCheeseListingByID(ctx context.Context, id int64) (CheeseCheeseListing, error) {
	row := q.db.QueryRowContext(ctx, getCheeseListingByID, id)
	return ScanCheeseListing(row)
}

const updateCheeseListing = `
UPDATE cheese_listings
SET title = $2, description = $3, price = $4, owner_id = $5
WHERE id = $1
RETURNING is_published
`

type UpdateCheeseListingParams struct {
	ID          int64
	Title       string
	Description string
	Price       int64
	OwnerID     int64
}

// UpdateCheeseListing writes the client-editable columns and returns the
// stored is_published. created_at and is_published are left untouched.
func (q *Queries) UpdateCheeseListing(ctx context.Context, arg UpdateCheeseListingParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, updateCheeseListing,
		arg.ID,
		arg.Title,
		arg.Description,
		arg.Price,
		arg.OwnerID,
	)
	var isPublished bool
	err := row.Scan(&isPublished)
	return isPublished, err
}

const setCheeseListingPublished = `
UPDATE cheese_listings
SET is_published = $2
WHERE id = $1
RETURNING ` + CheeseListingColumns + `
`

func (q *Queries) SetCheeseListingPublished(ctx context.Context, id int64, isPublished bool) (CheeseCheeseListing, error) {
	row := q.db.QueryRowContext(ctx, setCheeseListingPublished, id, isPublished)
	return ScanCheeseListing(row)
}

const deleteCheeseListing = `
DELETE FROM cheese_listings
WHERE id = $1
`

func (q *Queries) DeleteCheeseListing(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteCheeseListing, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ScanCheeseListing reads one row selected with CheeseListingColumns.
func ScanCheeseListing(s Scanner) (CheeseCheeseListing, error) {
	var i CheeseCheeseListing
	err := s.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Price,
		&i.CreatedAt,
		&i.IsPublished,
		&i.OwnerID,
	)
	return i, err
}
