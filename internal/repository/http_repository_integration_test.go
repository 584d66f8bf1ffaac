package repository

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prohmpiriya/event-management/internal/domain"
	"github.com/prohmpiriya/event-management/internal/stubserver"
	"github.com/prohmpiriya/event-management/internal/transport"
)

func newStubRepository(t *testing.T, seed bool) *HTTPEventRepository {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := stubserver.NewMemoryEventStore()
	if seed {
		require.NoError(t, store.Seed(context.Background()))
	}
	srv := httptest.NewServer(stubserver.NewRouter(stubserver.Config{Path: "/event-api/api.php"}, store, nil))
	t.Cleanup(srv.Close)

	client, err := transport.New(transport.Config{
		Endpoint:       srv.URL + "/event-api/api.php",
		ConnectTimeout: 2 * time.Second,
		ReadTimeout:    2 * time.Second,
		WriteTimeout:   2 * time.Second,
	}, nil, nil)
	require.NoError(t, err)

	return NewHTTPEventRepository(client, nil)
}

func TestHTTPEventRepository_AgainstStub_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newStubRepository(t, false)

	list := repo.GetAllEvents(ctx)
	require.True(t, list.IsSuccess())
	assert.Empty(t, list.Value())

	capacity := 40
	clientID := "client-chosen"
	created := repo.CreateEvent(ctx, domain.Event{
		ID:       &clientID,
		Title:    "Study Group",
		Date:     "2025-04-01",
		Time:     "16:00",
		Location: "Library",
		Capacity: &capacity,
		Status:   domain.StatusUpcoming,
	})
	require.True(t, created.IsSuccess(), created.Message())
	echoed := created.Value()
	id := echoed.IDValue()
	assert.NotEqual(t, "client-chosen", id)

	got := repo.GetEventByID(ctx, id)
	require.True(t, got.IsSuccess())
	assert.Equal(t, "Study Group", got.Value().Title)

	edited := got.Value()
	edited.Status = domain.StatusOngoing
	updated := repo.UpdateEvent(ctx, id, edited)
	require.True(t, updated.IsSuccess(), updated.Message())
	assert.Equal(t, domain.StatusOngoing, updated.Value().Status)

	stats := repo.GetStatistics(ctx)
	require.True(t, stats.IsSuccess())
	assert.Equal(t, 1, stats.Value().Total)
	assert.Equal(t, 1, stats.Value().Ongoing)

	deleted := repo.DeleteEvent(ctx, id)
	assert.True(t, deleted.IsSuccess())

	missing := repo.GetEventByID(ctx, id)
	require.False(t, missing.IsSuccess())
	assert.Equal(t, KindApplication, missing.Failure().Kind)
	assert.Equal(t, MsgEventNotFound, missing.Message())
}

func TestHTTPEventRepository_AgainstStub_Filters(t *testing.T) {
	ctx := context.Background()
	repo := newStubRepository(t, true)

	byDate := repo.GetEventsByDate(ctx, "2025-03-10")
	require.True(t, byDate.IsSuccess())
	assert.Len(t, byDate.Value(), 1)

	byRange := repo.GetEventsByDateRange(ctx, "2025-01-01", "2025-01-31")
	require.True(t, byRange.IsSuccess())
	assert.Len(t, byRange.Value(), 2)

	byStatus := repo.GetEventsByStatus(ctx, "cancelled")
	require.True(t, byStatus.IsSuccess())
	require.Len(t, byStatus.Value(), 1)
	assert.Equal(t, "Konser Amal", byStatus.Value()[0].Title)

	invalid := repo.GetEventsByStatus(ctx, "later")
	require.False(t, invalid.IsSuccess())
	assert.Equal(t, MsgFetchEventsByState, invalid.Message())
}

func TestHTTPEventRepository_AgainstStub_RejectedCreate(t *testing.T) {
	repo := newStubRepository(t, false)

	result := repo.CreateEvent(context.Background(), domain.Event{Title: "No place", Date: "2025-04-01", Time: "16:00"})
	require.False(t, result.IsSuccess())
	assert.Equal(t, MsgCreateEvent, result.Message())
	assert.Equal(t, 400, result.Failure().HTTPStatus)
}
