package postgres

import (
	"fmt"
	"strings"

	"github.com/ghuser/cheeseshop/services/cheese/domain/repositories"
)

// listingWhere builds the WHERE clause and arguments for a collection filter.
// Placeholders are numbered from 1; the clause is empty when nothing filters.
func listingWhere(f repositories.ListingFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(format string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	if f.IsPublished != nil {
		add("is_published = $%d", *f.IsPublished)
	}
	if f.Title != "" {
		add(`title ILIKE $%d ESCAPE '\'`, containsPattern(f.Title))
	}
	if f.Description != "" {
		add(`description ILIKE $%d ESCAPE '\'`, containsPattern(f.Description))
	}
	if !f.Price.IsZero() {
		bounds := []struct {
			op string
			v  *int64
		}{
			{">", f.Price.GT},
			{">=", f.Price.GTE},
			{"<", f.Price.LT},
			{"<=", f.Price.LTE},
		}
		for _, b := range bounds {
			if b.v != nil {
				add("price "+b.op+" $%d", *b.v)
			}
		}
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into an ILIKE pattern matching it anywhere,
// with LIKE wildcards in s matched literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
