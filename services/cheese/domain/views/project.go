package views

import (
	"time"

	"github.com/ghuser/cheeseshop/services/cheese/domain/models"
)

// Representation is a read projection keyed by external property name.
type Representation map[string]any

// ProjectRead projects l for reading in ctx. Derived fields are computed
// against now. A non-empty properties list keeps only the named read fields;
// it cannot bring back a description hidden by the description policy.
func ProjectRead(l *models.CheeseListing, ctx Context, now time.Time, properties []string) Representation {
	var keep map[string]bool
	if len(properties) > 0 {
		keep = make(map[string]bool, len(properties))
		for _, p := range properties {
			keep[p] = true
		}
	}

	out := make(Representation)
	for _, f := range CheeseListingFields {
		if !f.Read || excluded(f, ctx) {
			continue
		}
		if keep != nil && !keep[f.Name] {
			continue
		}
		out[f.Name] = f.get(l, now)
	}
	return out
}

// ProjectCollection projects every listing in the collection context.
func ProjectCollection(listings []*models.CheeseListing, now time.Time, properties []string) []Representation {
	out := make([]Representation, 0, len(listings))
	for _, l := range listings {
		out = append(out, ProjectRead(l, ContextCollection, now, properties))
	}
	return out
}
