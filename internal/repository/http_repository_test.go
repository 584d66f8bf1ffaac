package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prohmpiriya/event-management/internal/domain"
	"github.com/prohmpiriya/event-management/internal/transport"
)

// fakeDoer replies with a canned response and records the request
type fakeDoer struct {
	resp  *transport.Response
	err   error
	calls []transport.Request
}

func (f *fakeDoer) Do(ctx context.Context, req transport.Request) (*transport.Response, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func reply(status int, body string) *fakeDoer {
	resp := &transport.Response{StatusCode: status}
	if body != "" {
		resp.Body = []byte(body)
	}
	return &fakeDoer{resp: resp}
}

const eventJSON = `{"id":"1","title":"Tech Talk","date":"2025-01-15","time":"14:00","location":"Hall A","status":"upcoming"}`

func TestGetAllEvents(t *testing.T) {
	tests := []struct {
		name     string
		doer     *fakeDoer
		wantOK   bool
		wantLen  int
		wantMsg  string
		wantKind FailureKind
		wantHTTP int
	}{
		{
			name:    "list payload",
			doer:    reply(200, `{"status":200,"message":"ok","data":[`+eventJSON+`]}`),
			wantOK:  true,
			wantLen: 1,
		},
		{
			name:    "null payload is an empty list",
			doer:    reply(200, `{"status":200,"message":"ok","data":null}`),
			wantOK:  true,
			wantLen: 0,
		},
		{
			name:     "http error uses default message with code",
			doer:     reply(500, `{"status":500,"message":"db down","data":null}`),
			wantMsg:  "Failed to fetch events: 500",
			wantKind: KindApplication,
			wantHTTP: 500,
		},
		{
			name:     "envelope error uses envelope message",
			doer:     reply(200, `{"status":404,"message":"No events","data":null}`),
			wantMsg:  "No events",
			wantKind: KindApplication,
			wantHTTP: 404,
		},
		{
			name:     "envelope error with blank message",
			doer:     reply(200, `{"status":500,"message":"","data":null}`),
			wantMsg:  "Failed to fetch events: 500",
			wantKind: KindApplication,
		},
		{
			name:     "empty body",
			doer:     reply(200, ""),
			wantMsg:  "Failed to fetch events: 200",
			wantKind: KindApplication,
		},
		{
			name:     "malformed json",
			doer:     reply(200, `{"status":`),
			wantKind: KindTransport,
			wantMsg:  "Malformed response from server",
		},
		{
			name:     "transport failure",
			doer:     &fakeDoer{err: errors.New("GET request timed out: i/o timeout")},
			wantKind: KindTransport,
			wantMsg:  "GET request timed out: i/o timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewHTTPEventRepository(tt.doer, nil)
			result := repo.GetAllEvents(context.Background())

			require.Equal(t, tt.wantOK, result.IsSuccess())
			if tt.wantOK {
				assert.NotNil(t, result.Value())
				assert.Len(t, result.Value(), tt.wantLen)
				return
			}

			f := result.Failure()
			require.NotNil(t, f)
			assert.Equal(t, tt.wantMsg, f.Message)
			assert.Equal(t, tt.wantKind, f.Kind)
			if tt.wantHTTP != 0 {
				assert.Equal(t, tt.wantHTTP, f.HTTPStatus)
			}
		})
	}

	t.Run("sends a bare GET", func(t *testing.T) {
		doer := reply(200, `{"status":200,"message":"ok","data":[]}`)
		NewHTTPEventRepository(doer, nil).GetAllEvents(context.Background())
		require.Len(t, doer.calls, 1)
		assert.Equal(t, http.MethodGet, doer.calls[0].Method)
		assert.Empty(t, doer.calls[0].Query)
		assert.Nil(t, doer.calls[0].Body)
	})
}

func TestGetAllEvents_LooselyTypedFields(t *testing.T) {
	body := `{"status":200,"message":"ok","data":[
		{"id":42,"title":"Tech Talk","date":"2025-01-15","time":"14:00","location":"Hall A","capacity":"100","status":"upcoming"},
		{"id":"43","title":"Workshop","date":"2025-01-16","time":"09:00","location":"Lab","capacity":"","status":"ongoing"}]}`
	result := NewHTTPEventRepository(reply(200, body), nil).GetAllEvents(context.Background())

	require.True(t, result.IsSuccess(), result.Message())
	events := result.Value()
	require.Len(t, events, 2)
	assert.Equal(t, "42", events[0].IDValue())
	require.NotNil(t, events[0].Capacity)
	assert.Equal(t, 100, *events[0].Capacity)
	assert.Equal(t, "43", events[1].IDValue())
	assert.Nil(t, events[1].Capacity)
}

func TestGetEventByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		doer := reply(200, `{"status":200,"message":"ok","data":`+eventJSON+`}`)
		result := NewHTTPEventRepository(doer, nil).GetEventByID(context.Background(), "1")

		require.True(t, result.IsSuccess())
		assert.Equal(t, "Tech Talk", result.Value().Title)
		assert.Equal(t, "1", doer.calls[0].Query.Get("id"))
	})

	t.Run("null payload fails with not found", func(t *testing.T) {
		doer := reply(200, `{"status":200,"message":"ok","data":null}`)
		result := NewHTTPEventRepository(doer, nil).GetEventByID(context.Background(), "404")

		require.False(t, result.IsSuccess())
		assert.Equal(t, MsgEventNotFound, result.Message())
	})

	t.Run("http 404", func(t *testing.T) {
		doer := reply(404, `{"status":404,"message":"Event not found","data":null}`)
		result := NewHTTPEventRepository(doer, nil).GetEventByID(context.Background(), "404")

		require.False(t, result.IsSuccess())
		assert.Equal(t, MsgEventNotFound, result.Message())
		assert.Equal(t, 404, result.Failure().HTTPStatus)
	})
}

func TestListQueries(t *testing.T) {
	ok := `{"status":200,"message":"ok","data":[]}`

	t.Run("by date", func(t *testing.T) {
		doer := reply(200, ok)
		result := NewHTTPEventRepository(doer, nil).GetEventsByDate(context.Background(), "2025-01-15")
		require.True(t, result.IsSuccess())
		assert.Equal(t, "2025-01-15", doer.calls[0].Query.Get("date"))
	})

	t.Run("by date range", func(t *testing.T) {
		doer := reply(200, ok)
		result := NewHTTPEventRepository(doer, nil).GetEventsByDateRange(context.Background(), "2025-01-01", "2025-01-31")
		require.True(t, result.IsSuccess())
		assert.Equal(t, "2025-01-01", doer.calls[0].Query.Get("date_from"))
		assert.Equal(t, "2025-01-31", doer.calls[0].Query.Get("date_to"))
	})

	t.Run("by status", func(t *testing.T) {
		doer := reply(200, ok)
		result := NewHTTPEventRepository(doer, nil).GetEventsByStatus(context.Background(), "ongoing")
		require.True(t, result.IsSuccess())
		assert.Equal(t, "ongoing", doer.calls[0].Query.Get("status"))
	})

	t.Run("default messages", func(t *testing.T) {
		repo := NewHTTPEventRepository(reply(503, ""), nil)
		ctx := context.Background()
		assert.Equal(t, MsgFetchEventsByDate, repo.GetEventsByDate(ctx, "2025-01-15").Message())
		assert.Equal(t, MsgFetchEventsByRange, repo.GetEventsByDateRange(ctx, "a", "b").Message())
		assert.Equal(t, MsgFetchEventsByState, repo.GetEventsByStatus(ctx, "ongoing").Message())
	})
}

func TestGetStatistics(t *testing.T) {
	t.Run("payload", func(t *testing.T) {
		doer := reply(200, `{"status":200,"message":"ok","data":{"total":10,"upcoming":4,"ongoing":1,"completed":3,"cancelled":2}}`)
		result := NewHTTPEventRepository(doer, nil).GetStatistics(context.Background())

		require.True(t, result.IsSuccess())
		assert.Equal(t, domain.Statistics{Total: 10, Upcoming: 4, Ongoing: 1, Completed: 3, Cancelled: 2}, result.Value())
		assert.Equal(t, "1", doer.calls[0].Query.Get("stats"))
	})

	t.Run("counters sent as strings", func(t *testing.T) {
		doer := reply(200, `{"status":200,"message":"ok","data":{"total":"5","upcoming":"2","ongoing":1,"completed":"2","cancelled":"0"}}`)
		result := NewHTTPEventRepository(doer, nil).GetStatistics(context.Background())

		require.True(t, result.IsSuccess(), result.Message())
		assert.Equal(t, domain.Statistics{Total: 5, Upcoming: 2, Ongoing: 1, Completed: 2, Cancelled: 0}, result.Value())
	})

	t.Run("null payload", func(t *testing.T) {
		result := NewHTTPEventRepository(reply(200, `{"status":200,"message":"ok","data":null}`), nil).GetStatistics(context.Background())
		require.False(t, result.IsSuccess())
		assert.Equal(t, MsgFetchStatistics, result.Message())
	})
}

func TestCreateEvent(t *testing.T) {
	capacity := 100
	event := domain.Event{
		ID:       strPtr("client-side"),
		Title:    "Tech Talk",
		Date:     "2025-01-15",
		Time:     "14:00",
		Location: "Hall A",
		Capacity: &capacity,
		Status:   domain.StatusUpcoming,
	}

	t.Run("success returns server echo", func(t *testing.T) {
		doer := reply(201, `{"status":201,"message":"Event created","data":`+eventJSON+`}`)
		result := NewHTTPEventRepository(doer, nil).CreateEvent(context.Background(), event)

		require.True(t, result.IsSuccess())
		echo := result.Value()
		assert.Equal(t, "1", echo.IDValue())

		require.Len(t, doer.calls, 1)
		assert.Equal(t, http.MethodPost, doer.calls[0].Method)

		body, err := json.Marshal(doer.calls[0].Body)
		require.NoError(t, err)
		assert.NotContains(t, string(body), `"id"`)
		assert.Contains(t, string(body), `"capacity":100`)
	})

	t.Run("null payload fails", func(t *testing.T) {
		result := NewHTTPEventRepository(reply(200, `{"status":200,"message":"ok","data":null}`), nil).CreateEvent(context.Background(), event)
		require.False(t, result.IsSuccess())
		assert.Equal(t, MsgCreateEvent, result.Message())
	})

	t.Run("validation error from server", func(t *testing.T) {
		result := NewHTTPEventRepository(reply(200, `{"status":400,"message":"Title is required","data":null}`), nil).CreateEvent(context.Background(), event)
		require.False(t, result.IsSuccess())
		assert.Equal(t, "Title is required", result.Message())
	})
}

func TestUpdateEvent(t *testing.T) {
	event := domain.Event{Title: "Renamed", Date: "2025-01-15", Time: "14:00", Location: "Hall A", Status: domain.StatusOngoing}

	doer := reply(200, `{"status":200,"message":"ok","data":`+eventJSON+`}`)
	result := NewHTTPEventRepository(doer, nil).UpdateEvent(context.Background(), "1", event)
	require.True(t, result.IsSuccess())
	assert.Equal(t, http.MethodPut, doer.calls[0].Method)
	assert.Equal(t, "1", doer.calls[0].Query.Get("id"))
	assert.Equal(t, event, doer.calls[0].Body)

	failed := NewHTTPEventRepository(reply(500, ""), nil).UpdateEvent(context.Background(), "1", event)
	assert.Equal(t, MsgUpdateEvent, failed.Message())
}

func TestDeleteEvent(t *testing.T) {
	t.Run("success with null data", func(t *testing.T) {
		doer := reply(200, `{"status":200,"message":"Event deleted","data":null}`)
		result := NewHTTPEventRepository(doer, nil).DeleteEvent(context.Background(), "1")
		require.True(t, result.IsSuccess())
		assert.Equal(t, http.MethodDelete, doer.calls[0].Method)
		assert.Equal(t, "1", doer.calls[0].Query.Get("id"))
	})

	t.Run("http error", func(t *testing.T) {
		result := NewHTTPEventRepository(reply(404, `{"status":404,"message":"gone","data":null}`), nil).DeleteEvent(context.Background(), "9")
		require.False(t, result.IsSuccess())
		assert.Equal(t, MsgDeleteEvent, result.Message())
	})
}

func TestResult(t *testing.T) {
	ok := Ok(3)
	v, err := ok.Get()
	assert.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Empty(t, ok.Message())

	cause := errors.New("boom")
	failed := Fail[int](&Failure{Kind: KindTransport, Message: "boom", Err: cause})
	_, err = failed.Get()
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	f, isFailure := AsFailure(err)
	require.True(t, isFailure)
	assert.Equal(t, KindTransport, f.Kind)

	assert.False(t, Fail[int](nil).IsSuccess())
}

func strPtr(s string) *string { return &s }
