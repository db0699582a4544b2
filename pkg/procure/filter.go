package procure

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FieldKind classifies how a schema field filters and sorts.
type FieldKind int

const (
	// FieldText matches by case-insensitive substring and sorts caseless.
	FieldText FieldKind = iota
	// FieldToken matches by exact equality (statuses, types, enum-likes).
	FieldToken
	// FieldDate sorts and ranges as an instant.
	FieldDate
)

type fieldSpec[T any] struct {
	kind FieldKind
	str  func(T) string
	ts   func(T) time.Time
}

// Schema registers the filterable, sortable, and searchable fields of a
// resource. The engine only touches fields that are registered; asking it
// to sort by anything else is an error, not a silent no-op.
type Schema[T any] struct {
	fields     map[string]fieldSpec[T]
	search     []func(T) []string
	rangeField string
}

// NewSchema creates an empty schema ready for chaining.
func NewSchema[T any]() *Schema[T] {
	return &Schema[T]{
		fields: make(map[string]fieldSpec[T]),
	}
}

// Text registers a substring-matched, caseless-sorted field.
func (s *Schema[T]) Text(name string, get func(T) string) *Schema[T] {
	s.fields[name] = fieldSpec[T]{kind: FieldText, str: get}

	return s
}

// Token registers an equality-matched field.
func (s *Schema[T]) Token(name string, get func(T) string) *Schema[T] {
	s.fields[name] = fieldSpec[T]{kind: FieldToken, str: get}

	return s
}

// Date registers a field sorted and ranged as an instant.
func (s *Schema[T]) Date(name string, get func(T) time.Time) *Schema[T] {
	s.fields[name] = fieldSpec[T]{kind: FieldDate, ts: get}

	return s
}

// Searchable adds a value extractor to the free-text search set. One
// record may contribute many values (nested contacts, line items).
func (s *Schema[T]) Searchable(get func(T) []string) *Schema[T] {
	s.search = append(s.search, get)

	return s
}

// DateRange names the registered date field the dateFrom/dateTo window
// applies to.
func (s *Schema[T]) DateRange(name string) *Schema[T] {
	s.rangeField = name

	return s
}

// ValidateSort checks that the sort references a registered field.
func (s *Schema[T]) ValidateSort(st Sort) error {
	if st.IsZero() {
		return nil
	}

	if _, ok := s.fields[st.Field]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSortField, st.Field)
	}

	return nil
}

// matches applies every active filter to one record.
func (s *Schema[T]) matches(record T, query *QueryParams) bool {
	for key := range query.Filters {
		switch key {
		case FilterSearch, FilterDateFrom, FilterDateTo:
			continue
		}

		value := query.Filter(key)
		if value == "" {
			continue
		}

		spec, ok := s.fields[key]
		if !ok || spec.str == nil {
			continue
		}

		switch spec.kind {
		case FieldToken:
			if spec.str(record) != value {
				return false
			}
		case FieldText, FieldDate:
			if !strings.Contains(strings.ToLower(spec.str(record)), strings.ToLower(value)) {
				return false
			}
		}
	}

	if term := query.Filter(FilterSearch); term != "" && !s.matchesSearch(record, term) {
		return false
	}

	return s.matchesDateRange(record, query)
}

func (s *Schema[T]) matchesSearch(record T, term string) bool {
	term = strings.ToLower(term)

	for _, get := range s.search {
		for _, value := range get(record) {
			if strings.Contains(strings.ToLower(value), term) {
				return true
			}
		}
	}

	return false
}

func (s *Schema[T]) matchesDateRange(record T, query *QueryParams) bool {
	if s.rangeField == "" {
		return true
	}

	spec, ok := s.fields[s.rangeField]
	if !ok || spec.ts == nil {
		return true
	}

	instant := spec.ts(record)

	// Unparseable bounds disable that side of the window.
	if from, ok := parseQueryDate(query.Filter(FilterDateFrom)); ok && instant.Before(from) {
		return false
	}

	if to, ok := parseQueryDate(query.Filter(FilterDateTo)); ok && instant.After(to) {
		return false
	}

	return true
}

func parseQueryDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// Apply runs the full pipeline: filter, then stable sort, then paginate.
// It never mutates the input slice. The page is taken as requested, with
// no clamping: a page past the end yields empty data under unchanged
// pagination math.
func Apply[T any](records []T, schema *Schema[T], query *QueryParams) (Page[T], error) {
	if query == nil {
		query = NewQueryParams()
	}

	err := schema.ValidateSort(query.Sort)
	if err != nil {
		return Page[T]{}, err
	}

	filtered := make([]T, 0, len(records))

	for _, record := range records {
		if schema.matches(record, query) {
			filtered = append(filtered, record)
		}
	}

	if !query.Sort.IsZero() {
		spec := schema.fields[query.Sort.Field]
		desc := query.Sort.Direction == SortDesc

		sort.SliceStable(filtered, func(i, j int) bool {
			if desc {
				i, j = j, i
			}

			return lessBySpec(spec, filtered[i], filtered[j])
		})
	}

	return paginate(filtered, query.PageRequest()), nil
}

func lessBySpec[T any](spec fieldSpec[T], a, b T) bool {
	if spec.kind == FieldDate && spec.ts != nil {
		return spec.ts(a).Before(spec.ts(b))
	}

	return strings.ToLower(spec.str(a)) < strings.ToLower(spec.str(b))
}

func paginate[T any](records []T, req PageRequest) Page[T] {
	total := len(records)

	totalPages := 0
	if total > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}

	start := (req.Page - 1) * req.Limit
	end := start + req.Limit

	var data []T

	switch {
	case start >= total || start < 0:
		data = []T{}
	case end > total:
		data = append(data, records[start:total]...)
	default:
		data = append(data, records[start:end]...)
	}

	return Page[T]{
		Data: data,
		Pagination: PageMeta{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1 && total > 0,
		},
	}
}
