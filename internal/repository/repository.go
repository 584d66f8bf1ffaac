package repository

import (
	"context"

	"github.com/prohmpiriya/event-management/internal/domain"
)

// EventRepository is the access layer to the remote event API
type EventRepository interface {
	GetAllEvents(ctx context.Context) Result[[]domain.Event]
	GetEventByID(ctx context.Context, id string) Result[domain.Event]
	GetEventsByDate(ctx context.Context, date string) Result[[]domain.Event]
	GetEventsByDateRange(ctx context.Context, from, to string) Result[[]domain.Event]
	GetEventsByStatus(ctx context.Context, status string) Result[[]domain.Event]
	GetStatistics(ctx context.Context) Result[domain.Statistics]
	CreateEvent(ctx context.Context, event domain.Event) Result[domain.Event]
	UpdateEvent(ctx context.Context, id string, event domain.Event) Result[domain.Event]
	DeleteEvent(ctx context.Context, id string) Result[struct{}]
}

// Default failure messages per operation
const (
	MsgFetchEventsByDate  = "Failed to fetch events by date"
	MsgFetchEventsByRange = "Failed to fetch events by date range"
	MsgFetchEventsByState = "Failed to fetch events by status"
	MsgEventNotFound      = "Event not found"
	MsgFetchStatistics    = "Failed to fetch statistics"
	MsgCreateEvent        = "Failed to create event"
	MsgUpdateEvent        = "Failed to update event"
	MsgDeleteEvent        = "Failed to delete event"
)

// MsgFetchEvents is formatted with the HTTP status code
const MsgFetchEvents = "Failed to fetch events: %d"
