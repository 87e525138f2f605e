// Package views maps cheese listings to and from their external
// representations. Every property is declared once in CheeseListingFields.
package views

import (
	"time"

	"github.com/ghuser/cheeseshop/services/cheese/domain/models"
)

// Context selects the read representation.
type Context int

const (
	// ContextCollection is the summary shown in listing collections.
	ContextCollection Context = iota
	// ContextItem is the detail shown for a single listing.
	ContextItem
)

// TitleMaxMessage replaces the default message for an over-long title.
const TitleMaxMessage = "Describe your cheese in 50 characters or less."

// Field declares one external property of a cheese listing.
type Field struct {
	// Name is the external property name.
	Name string
	// Property is the entity property Name maps to.
	Property string
	Read     bool
	Write    bool
	// Derived fields are computed on read and never stored.
	Derived bool
	// Rule is a go-playground/validator tag applied on write.
	Rule string
	// Messages overrides the default message per failed rule tag.
	Messages map[string]string

	get   func(l *models.CheeseListing, now time.Time) any
	input func(v *WriteView) any
	apply func(v *WriteView, l *models.CheeseListing)
}

// CheeseListingFields is the complete property table. createdAt and
// isPublished are listed for completeness and appear in neither view.
var CheeseListingFields = []Field{
	{
		Name: "id", Property: "id", Read: true,
		get: func(l *models.CheeseListing, _ time.Time) any { return l.ID() },
	},
	{
		Name: "title", Property: "title", Read: true, Write: true,
		Rule:     "required,notblank,min=2,max=50",
		Messages: map[string]string{"max": TitleMaxMessage},
		get:      func(l *models.CheeseListing, _ time.Time) any { return l.Title() },
		input:    func(v *WriteView) any { return v.Title },
		apply:    func(v *WriteView, l *models.CheeseListing) { l.SetTitle(*v.Title) },
	},
	{
		Name: "description", Property: "description", Read: true,
		get: func(l *models.CheeseListing, _ time.Time) any { return l.Description() },
	},
	{
		Name: "description", Property: "textDescription", Write: true,
		Rule:  "required,notblank",
		input: func(v *WriteView) any { return v.Description },
		apply: func(v *WriteView, l *models.CheeseListing) { l.SetTextDescription(*v.Description) },
	},
	{
		Name: "shortDescription", Property: "shortDescription", Read: true, Derived: true,
		get: func(l *models.CheeseListing, _ time.Time) any { return l.ShortDescription() },
	},
	{
		Name: "price", Property: "price", Read: true, Write: true,
		Rule:  "required",
		get:   func(l *models.CheeseListing, _ time.Time) any { return l.Price() },
		input: func(v *WriteView) any { return v.Price },
		apply: func(v *WriteView, l *models.CheeseListing) { l.SetPrice(*v.Price) },
	},
	{
		Name: "createdAt", Property: "createdAt",
	},
	{
		Name: "createdAtAgo", Property: "createdAtAgo", Read: true, Derived: true,
		get: func(l *models.CheeseListing, now time.Time) any { return l.CreatedAtAgoFrom(now) },
	},
	{
		Name: "isPublished", Property: "isPublished",
	},
	{
		Name: "owner", Property: "owner", Read: true, Write: true,
		Rule:  "required,gt=0",
		get:   func(l *models.CheeseListing, _ time.Time) any { return l.OwnerID() },
		input: func(v *WriteView) any { return v.Owner },
		apply: func(v *WriteView, l *models.CheeseListing) { l.SetOwner(*v.Owner) },
	},
}

// DescriptionField returns the one description property exposed in ctx:
// the full description for a single listing, the shortened one for
// collections.
func DescriptionField(ctx Context) string {
	if ctx == ContextItem {
		return "description"
	}
	return "shortDescription"
}

// excluded reports whether the description policy hides f in ctx.
func excluded(f Field, ctx Context) bool {
	switch f.Name {
	case "description", "shortDescription":
		return f.Name != DescriptionField(ctx)
	}
	return false
}

// ReadFields returns the external names exposed in ctx, in table order.
func ReadFields(ctx Context) []string {
	var names []string
	for _, f := range CheeseListingFields {
		if f.Read && !excluded(f, ctx) {
			names = append(names, f.Name)
		}
	}
	return names
}

// WriteFields returns the external names accepted on write, in table order.
func WriteFields() []string {
	var names []string
	for _, f := range CheeseListingFields {
		if f.Write {
			names = append(names, f.Name)
		}
	}
	return names
}
