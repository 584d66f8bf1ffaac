package stubserver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prohmpiriya/event-management/internal/domain"
)

func TestMemoryEventStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryEventStore()
	store.now = func() time.Time { return time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC) }
	store.newID = func() string { return "fixed-id" }

	created, err := store.Create(ctx, domain.Event{Title: "A", Date: "2025-01-02", Time: "10:00", Location: "X", Status: domain.StatusUpcoming})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", created.IDValue())
	assert.Equal(t, "2025-01-01 10:00:00", *created.CreatedAt)

	// returned copies are detached from the store
	created.Title = "mutated"
	got, err := store.Get(ctx, "fixed-id")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)

	store.now = func() time.Time { return time.Date(2025, 1, 2, 11, 0, 0, 0, time.UTC) }
	updated, err := store.Update(ctx, "fixed-id", domain.Event{Title: "B", Date: "2025-01-02", Time: "10:00", Location: "X", Status: domain.StatusOngoing})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01 10:00:00", *updated.CreatedAt)
	assert.Equal(t, "2025-01-02 11:00:00", *updated.UpdatedAt)

	require.NoError(t, store.Delete(ctx, "fixed-id"))
	_, err = store.Get(ctx, "fixed-id")
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "fixed-id"), ErrEventNotFound)

	_, err = store.Update(ctx, "fixed-id", domain.Event{})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestMemoryEventStore_ListRangeInclusive(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryEventStore()
	for _, date := range []string{"2025-01-01", "2025-01-15", "2025-01-31", "2025-02-01"} {
		_, err := store.Create(ctx, domain.Event{Title: date, Date: date, Time: "10:00", Location: "X", Status: domain.StatusUpcoming})
		require.NoError(t, err)
	}

	events, err := store.List(ctx, EventFilter{DateFrom: "2025-01-01", DateTo: "2025-01-31"})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "2025-01-01", events[0].Date)
	assert.Equal(t, "2025-01-31", events[2].Date)
}
