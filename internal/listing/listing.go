// Package listing narrows, orders and pages an already fetched event list.
// Everything here runs client-side; the API itself never paginates.
package listing

import (
	"fmt"
	"slices"
	"strings"

	"github.com/prohmpiriya/event-management/internal/domain"
)

// DefaultPageSize is the number of events shown per page
const DefaultPageSize = 5

// StatusAll disables status filtering
const StatusAll = "all"

// SortKey selects the ordering of a list
type SortKey string

// SortKey constants
const (
	SortNone     SortKey = ""
	SortTime     SortKey = "time"
	SortLocation SortKey = "location"
	SortTitle    SortKey = "title"
)

// ParseSortKey validates a user supplied sort key
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortTime, SortLocation, SortTitle:
		return k, nil
	default:
		return SortNone, fmt.Errorf("unknown sort key %q (want time, location or title)", s)
	}
}

// Filter keeps events whose title contains query (case-insensitive) and whose
// status equals status. An empty query or status "all"/"" matches everything.
func Filter(events []domain.Event, query, status string) []domain.Event {
	query = strings.ToLower(strings.TrimSpace(query))
	status = strings.ToLower(strings.TrimSpace(status))

	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if query != "" && !strings.Contains(strings.ToLower(e.Title), query) {
			continue
		}
		if status != "" && status != StatusAll && string(e.Status) != status {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Sort returns a stably sorted copy of events
func Sort(events []domain.Event, key SortKey) []domain.Event {
	out := slices.Clone(events)
	var field func(e domain.Event) string
	switch key {
	case SortTime:
		field = func(e domain.Event) string { return e.Time }
	case SortLocation:
		field = func(e domain.Event) string { return e.Location }
	case SortTitle:
		field = func(e domain.Event) string { return e.Title }
	default:
		return out
	}
	slices.SortStableFunc(out, func(a, b domain.Event) int {
		return strings.Compare(field(a), field(b))
	})
	return out
}

// Page is one slice of a paginated list
type Page struct {
	Items      []domain.Event
	Page       int // 1-based
	PageSize   int
	TotalPages int
	Total      int
}

// HasNext reports whether a later page exists
func (p Page) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrev reports whether an earlier page exists
func (p Page) HasPrev() bool {
	return p.Page > 1 && p.TotalPages > 0
}

// Paginate returns the 1-based page of events. Out of range pages have no items.
func Paginate(events []domain.Event, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(events)
	totalPages := (total + size - 1) / size

	p := Page{Page: page, PageSize: size, TotalPages: totalPages, Total: total, Items: []domain.Event{}}
	if page < 1 || page > totalPages {
		return p
	}

	start := (page - 1) * size
	end := min(start+size, total)
	p.Items = slices.Clone(events[start:end])
	return p
}

// Query bundles the listing controls of one view
type Query struct {
	Search   string
	Status   string
	Sort     SortKey
	Page     int
	PageSize int
}

// Apply filters, sorts and paginates in that order
func Apply(events []domain.Event, q Query) Page {
	page := q.Page
	if page == 0 {
		page = 1
	}
	return Paginate(Sort(Filter(events, q.Search, q.Status), q.Sort), page, q.PageSize)
}
