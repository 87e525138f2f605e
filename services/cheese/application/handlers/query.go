package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ghuser/cheeseshop/services/cheese/domain/repositories"
)

// listingQuery is the parsed query string of GET /cheeses.
type listingQuery struct {
	Filter     repositories.ListingFilter
	Page       int
	Properties []string
}

// parseListingQuery reads page, isPublished, title, description,
// price[gt|gte|lt|lte] and properties[] from q.
func parseListingQuery(q url.Values) (listingQuery, error) {
	lq := listingQuery{Page: 1}

	if s := q.Get("page"); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil || page < 1 {
			return lq, errors.New("page must be a positive integer")
		}
		if page > repositories.MaxPage {
			return lq, fmt.Errorf("page must not exceed %d", repositories.MaxPage)
		}
		lq.Page = page
	}

	if s := q.Get("isPublished"); s != "" {
		published, err := strconv.ParseBool(s)
		if err != nil {
			return lq, errors.New("isPublished must be true or false")
		}
		lq.Filter.IsPublished = &published
	}

	lq.Filter.Title = strings.TrimSpace(q.Get("title"))
	lq.Filter.Description = strings.TrimSpace(q.Get("description"))

	bounds := []struct {
		key string
		dst **int64
	}{
		{"price[gt]", &lq.Filter.Price.GT},
		{"price[gte]", &lq.Filter.Price.GTE},
		{"price[lt]", &lq.Filter.Price.LT},
		{"price[lte]", &lq.Filter.Price.LTE},
	}
	for _, b := range bounds {
		s := q.Get(b.key)
		if s == "" {
			continue
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return lq, fmt.Errorf("%s must be an integer number of cents", b.key)
		}
		*b.dst = &v
	}

	lq.Properties = properties(q)
	return lq, nil
}

// properties returns the requested field names from properties[] (or the
// bare properties key), in request order without duplicates.
func properties(q url.Values) []string {
	var out []string
	seen := make(map[string]bool)
	for _, key := range []string{"properties[]", "properties"} {
		for _, p := range q[key] {
			p = strings.TrimSpace(p)
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
