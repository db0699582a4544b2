package procure

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultPageLimit matches the page size the dashboard requests when the
// caller does not choose one.
const DefaultPageLimit = 10

// Well-known filter keys. Every other key is matched against the resource
// schema as an exact-value or substring filter.
const (
	FilterSearch   = "search"
	FilterStatus   = "status"
	FilterDateFrom = "dateFrom"
	FilterDateTo   = "dateTo"

	// FilterAll is the sentinel value that disables a filter entirely.
	FilterAll = "all"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Sort names a field and a direction for result ordering.
type Sort struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// ParseSort parses the wire form "field:direction". A missing direction
// defaults to ascending; anything other than asc/desc is rejected.
func ParseSort(value string) (Sort, error) {
	if value == "" {
		return Sort{}, nil
	}

	field, direction, found := strings.Cut(value, ":")
	if !found {
		direction = SortAsc
	}

	if direction != SortAsc && direction != SortDesc {
		return Sort{}, fmt.Errorf("%w: %q", ErrInvalidSortDirection, direction)
	}

	return Sort{Field: field, Direction: direction}, nil
}

// String renders the wire form "field:direction".
func (s Sort) String() string {
	if s.Field == "" {
		return ""
	}

	return s.Field + ":" + s.Direction
}

// IsZero reports whether no ordering was requested.
func (s Sort) IsZero() bool {
	return s.Field == ""
}

// QueryParams carries the list-shaping options for List and Search calls:
// pagination, ordering, and field filters. Filters with the value "all"
// are dropped before they reach the wire or the engine.
type QueryParams struct {
	Page    int               `json:"page,omitempty"`
	Limit   int               `json:"limit,omitempty"`
	Sort    Sort              `json:"sort,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
}

// NewQueryParams creates an empty QueryParams ready for chaining.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string]string),
	}
}

// WithPage sets the 1-based page number.
func (q *QueryParams) WithPage(page int) *QueryParams {
	q.Page = page

	return q
}

// WithLimit sets the page size.
func (q *QueryParams) WithLimit(limit int) *QueryParams {
	q.Limit = limit

	return q
}

// WithSort sets the ordering.
func (q *QueryParams) WithSort(field, direction string) *QueryParams {
	q.Sort = Sort{Field: field, Direction: direction}

	return q
}

// WithFilter sets a filter value, replacing any previous value for the key.
func (q *QueryParams) WithFilter(key, value string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string]string)
	}

	q.Filters[key] = value

	return q
}

// WithSearch sets the free-text search term.
func (q *QueryParams) WithSearch(term string) *QueryParams {
	return q.WithFilter(FilterSearch, term)
}

// WithDateRange sets the inclusive date window filters.
func (q *QueryParams) WithDateRange(from, to string) *QueryParams {
	if from != "" {
		q.WithFilter(FilterDateFrom, from)
	}

	if to != "" {
		q.WithFilter(FilterDateTo, to)
	}

	return q
}

// Filter returns the value for a key with the "all" sentinel normalized
// away: disabled and absent filters both come back as "".
func (q *QueryParams) Filter(key string) string {
	if q == nil || q.Filters == nil {
		return ""
	}

	value := q.Filters[key]
	if value == FilterAll {
		return ""
	}

	return value
}

// PageRequest resolves the pagination fields, applying defaults.
func (q *QueryParams) PageRequest() PageRequest {
	req := DefaultPageRequest()
	if q == nil {
		return req
	}

	if q.Page > 0 {
		req.Page = q.Page
	}

	if q.Limit > 0 {
		req.Limit = q.Limit
	}

	return req
}

// ToValues converts the params to url.Values for the wire. Only set
// params are emitted; "all" filter values are skipped.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}
	if q == nil {
		return values
	}

	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	if !q.Sort.IsZero() {
		values.Set("sort", q.Sort.String())
	}

	for key, value := range q.Filters {
		if value == "" || value == FilterAll {
			continue
		}

		values.Set(key, value)
	}

	return values
}
