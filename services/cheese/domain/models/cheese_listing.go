package models

import (
	"time"

	"github.com/dustin/go-humanize"

	cheesedomain "github.com/ghuser/cheeseshop/services/cheese/domain"
)

// CheeseListing is the aggregate offered for sale on the marketplace.
//
// Setters assign without validating; views.Validate runs before any commit.
// createdAt has no setter and the id can be assigned only once.
type CheeseListing struct {
	id          int64
	title       string
	description string // line-break normalized
	price       int64  // cents
	createdAt   time.Time
	isPublished bool
	ownerID     int64
}

// NewCheeseListing returns an unpublished listing created now. The title may
// be empty; it is checked when the listing is validated.
func NewCheeseListing(title string) *CheeseListing {
	return &CheeseListing{
		title:     title,
		createdAt: time.Now().UTC(),
	}
}

// RestoreCheeseListing rebuilds a listing from its stored fields.
// description must already be normalized.
func RestoreCheeseListing(id int64, title, description string, price int64, createdAt time.Time, isPublished bool, ownerID int64) *CheeseListing {
	return &CheeseListing{
		id:          id,
		title:       title,
		description: description,
		price:       price,
		createdAt:   createdAt,
		isPublished: isPublished,
		ownerID:     ownerID,
	}
}

// ID returns the storage identifier, or 0 before the listing is persisted.
func (l *CheeseListing) ID() int64 { return l.id }

// AssignID records the identifier generated by the persistence layer.
func (l *CheeseListing) AssignID(id int64) error {
	if l.id != 0 {
		return cheesedomain.ErrIDAlreadyAssigned
	}
	l.id = id
	return nil
}

func (l *CheeseListing) Title() string { return l.title }

func (l *CheeseListing) SetTitle(title string) { l.title = title }

// Description returns the stored, line-break normalized text.
func (l *CheeseListing) Description() string { return l.description }

// SetTextDescription stores raw with its line breaks normalized.
func (l *CheeseListing) SetTextDescription(raw string) {
	l.description = NormalizeLineBreaks(raw)
}

// ShortDescription returns the description shortened for summaries.
func (l *CheeseListing) ShortDescription() string {
	return Shorten(l.description)
}

// Price returns the price in cents.
func (l *CheeseListing) Price() int64 { return l.price }

func (l *CheeseListing) SetPrice(cents int64) { l.price = cents }

func (l *CheeseListing) CreatedAt() time.Time { return l.createdAt }

// CreatedAtAgo describes the listing age relative to the current time,
// e.g. "3 hours ago". The result changes as time passes.
func (l *CheeseListing) CreatedAtAgo() string {
	return l.CreatedAtAgoFrom(time.Now())
}

// CreatedAtAgoFrom describes the listing age relative to now.
func (l *CheeseListing) CreatedAtAgoFrom(now time.Time) string {
	return humanize.RelTime(l.createdAt, now, "ago", "from now")
}

func (l *CheeseListing) IsPublished() bool { return l.isPublished }

func (l *CheeseListing) SetPublished(published bool) { l.isPublished = published }

// OwnerID returns the id of the owning user.
func (l *CheeseListing) OwnerID() int64 { return l.ownerID }

func (l *CheeseListing) SetOwner(userID int64) { l.ownerID = userID }
