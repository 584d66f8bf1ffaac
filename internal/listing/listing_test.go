package listing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prohmpiriya/event-management/internal/domain"
)

func ev(title, location, at string, status domain.EventStatus) domain.Event {
	return domain.Event{Title: title, Location: location, Time: at, Date: "2025-01-15", Status: status}
}

func titles(events []domain.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Title)
	}
	return out
}

var fixture = []domain.Event{
	ev("Go Meetup", "Hall B", "18:00", domain.StatusUpcoming),
	ev("Art Expo", "Gallery", "09:00", domain.StatusOngoing),
	ev("go workshop", "Lab 1", "13:30", domain.StatusCompleted),
	ev("Charity Run", "Park", "06:00", domain.StatusCancelled),
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status string
		want   []string
	}{
		{"no filter", "", "all", []string{"Go Meetup", "Art Expo", "go workshop", "Charity Run"}},
		{"empty status", "", "", []string{"Go Meetup", "Art Expo", "go workshop", "Charity Run"}},
		{"case-insensitive search", "GO", "all", []string{"Go Meetup", "go workshop"}},
		{"status only", "", "ongoing", []string{"Art Expo"}},
		{"search and status", "go", "completed", []string{"go workshop"}},
		{"no match", "zzz", "all", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(Filter(fixture, tt.query, tt.status)))
		})
	}
}

func TestSort(t *testing.T) {
	assert.Equal(t, []string{"Charity Run", "Art Expo", "go workshop", "Go Meetup"}, titles(Sort(fixture, SortTime)))
	assert.Equal(t, []string{"Art Expo", "Go Meetup", "go workshop", "Charity Run"}, titles(Sort(fixture, SortLocation)))
	assert.Equal(t, []string{"Art Expo", "Charity Run", "Go Meetup", "go workshop"}, titles(Sort(fixture, SortTitle)))
	assert.Equal(t, titles(fixture), titles(Sort(fixture, SortNone)))

	// input untouched
	assert.Equal(t, "Go Meetup", fixture[0].Title)
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("Location")
	require.NoError(t, err)
	assert.Equal(t, SortLocation, k)

	_, err = ParseSortKey("date")
	assert.Error(t, err)
}

func TestPaginate(t *testing.T) {
	events := make([]domain.Event, 12)
	for i := range events {
		events[i] = ev(fmt.Sprintf("e%02d", i), "x", "10:00", domain.StatusUpcoming)
	}

	p := Paginate(events, 1, 5)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 12, p.Total)
	assert.Len(t, p.Items, 5)
	assert.True(t, p.HasNext())
	assert.False(t, p.HasPrev())

	last := Paginate(events, 3, 5)
	assert.Equal(t, []string{"e10", "e11"}, titles(last.Items))
	assert.False(t, last.HasNext())
	assert.True(t, last.HasPrev())

	beyond := Paginate(events, 4, 5)
	assert.NotNil(t, beyond.Items)
	assert.Empty(t, beyond.Items)

	assert.Equal(t, DefaultPageSize, Paginate(events, 1, 0).PageSize)

	empty := Paginate(nil, 1, 5)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Empty(t, empty.Items)
	assert.False(t, empty.HasPrev())
}

func TestApply(t *testing.T) {
	page := Apply(fixture, Query{Search: "go", Sort: SortTime, PageSize: 1})
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, []string{"go workshop"}, titles(page.Items))
}
