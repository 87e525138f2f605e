package views

import (
	"fmt"
	"sort"
	"strings"

	pkgvalidator "github.com/ghuser/cheeseshop/pkg/validator"
	cheesedomain "github.com/ghuser/cheeseshop/services/cheese/domain"
	"github.com/ghuser/cheeseshop/services/cheese/domain/models"
)

// WriteView is the representation accepted when creating or updating a
// listing. A nil field was not supplied (or was null). Keys outside the
// write view, including read-only ones, are ignored by the JSON decoder.
type WriteView struct {
	Title *string `json:"title" example:"Brie de Meaux"`
	// Description is raw text; line breaks are normalized when applied.
	Description *string `json:"description" example:"Soft and creamy.\nBest at room temperature."`
	Price       *int64  `json:"price" example:"1250"`
	Owner       *int64  `json:"owner" example:"1"`
} // @name CheeseListingWrite

// WriteViewOf returns the write view of an existing listing. Decoding a
// partial payload on top of it yields merge semantics.
func WriteViewOf(l *models.CheeseListing) *WriteView {
	title := l.Title()
	description := l.Description()
	price := l.Price()
	owner := l.OwnerID()
	return &WriteView{
		Title:       &title,
		Description: &description,
		Price:       &price,
		Owner:       &owner,
	}
}

// FieldErrors maps external property names to validation messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e[name]))
	}
	return fmt.Sprintf("%s: %s", cheesedomain.ErrInvalidCheeseListing, strings.Join(parts, "; "))
}

// Unwrap lets errors.Is match ErrInvalidCheeseListing.
func (e FieldErrors) Unwrap() error {
	return cheesedomain.ErrInvalidCheeseListing
}

// Validate checks every write field against its rule. It returns nil when
// the view is valid. Only the first failed rule of a field is reported.
func Validate(v *WriteView) FieldErrors {
	var errs FieldErrors
	for _, f := range CheeseListingFields {
		if !f.Write || f.Rule == "" {
			continue
		}
		err := pkgvalidator.Var(f.input(v), f.Rule)
		if err == nil {
			continue
		}
		fes := pkgvalidator.FieldErrors(err)
		if len(fes) == 0 {
			continue
		}
		msg, ok := f.Messages[fes[0].Tag()]
		if !ok {
			msg = pkgvalidator.Message(fes[0])
		}
		if errs == nil {
			errs = make(FieldErrors)
		}
		errs[f.Name] = msg
	}
	return errs
}

// Apply copies a validated view onto l through the entity setters.
// It panics if called with a view that did not pass Validate.
func Apply(v *WriteView, l *models.CheeseListing) {
	for _, f := range CheeseListingFields {
		if f.Write {
			f.apply(v, l)
		}
	}
}
