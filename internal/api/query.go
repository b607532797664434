package api

import (
	"net/url"
	"strings"
)

// SortBy names a server-side catalog ordering.
type SortBy string

const (
	SortTitle     SortBy = "title"
	SortAuthor    SortBy = "author"
	SortPriceAsc  SortBy = "price_asc"
	SortPriceDesc SortBy = "price_desc"
	SortRating    SortBy = "rating"
)

// SortOrder is the cycle order presented to the user.
var SortOrder = []SortBy{SortTitle, SortAuthor, SortPriceAsc, SortPriceDesc, SortRating}

// Next returns the following sort mode in the cycle.
func (s SortBy) Next() SortBy {
	for i, mode := range SortOrder {
		if mode == s {
			return SortOrder[(i+1)%len(SortOrder)]
		}
	}
	return SortOrder[0]
}

// DefaultCategory is the category value that matches everything and is
// therefore never sent to the server.
const DefaultCategory = "All"

// BookQuery configures /books requests. Zero values mean "unconstrained"
// and are omitted from the outgoing query; only sortBy is always present.
type BookQuery struct {
	Category string
	Search   string
	MinPrice string
	MaxPrice string
	SortBy   SortBy
}

// Values encodes the query, omitting default and empty fields so the
// request never over-constrains the result.
func (q BookQuery) Values() url.Values {
	values := url.Values{}
	if category := strings.TrimSpace(q.Category); category != "" && category != DefaultCategory {
		values.Set("category", category)
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		values.Set("search", search)
	}
	if min := strings.TrimSpace(q.MinPrice); min != "" {
		values.Set("minPrice", min)
	}
	if max := strings.TrimSpace(q.MaxPrice); max != "" {
		values.Set("maxPrice", max)
	}
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = SortTitle
	}
	values.Set("sortBy", string(sortBy))
	return values
}
