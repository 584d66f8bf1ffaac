package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/prohmpiriya/event-management/internal/domain"
	"github.com/prohmpiriya/event-management/internal/transport"
	"github.com/prohmpiriya/event-management/pkg/envelope"
	"github.com/prohmpiriya/event-management/pkg/logger"
	"github.com/prohmpiriya/event-management/pkg/telemetry"
)

// HTTPEventRepository implements EventRepository over the transport client
type HTTPEventRepository struct {
	client transport.Doer
	log    *logger.Logger
}

// NewHTTPEventRepository creates a new repository. log may be nil.
func NewHTTPEventRepository(client transport.Doer, log *logger.Logger) *HTTPEventRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &HTTPEventRepository{client: client, log: log.Named("repository")}
}

// defaultMessage picks the failure message for a non-2xx or null response
type defaultMessage func(status int) string

func fixed(msg string) defaultMessage {
	return func(int) string { return msg }
}

// operation describes one use case against the endpoint
type operation struct {
	name     string
	request  transport.Request
	fallback defaultMessage
}

// GetAllEvents lists every event
func (r *HTTPEventRepository) GetAllEvents(ctx context.Context) Result[[]domain.Event] {
	return fetchList(ctx, r, operation{
		name:    "GetAllEvents",
		request: transport.Request{Method: http.MethodGet},
		fallback: func(status int) string {
			return fmt.Sprintf(MsgFetchEvents, status)
		},
	})
}

// GetEventByID fetches a single event
func (r *HTTPEventRepository) GetEventByID(ctx context.Context, id string) Result[domain.Event] {
	return fetchOne[domain.Event](ctx, r, operation{
		name:     "GetEventByID",
		request:  transport.Request{Method: http.MethodGet, Query: url.Values{"id": {id}}},
		fallback: fixed(MsgEventNotFound),
	})
}

// GetEventsByDate lists events on one date (YYYY-MM-DD)
func (r *HTTPEventRepository) GetEventsByDate(ctx context.Context, date string) Result[[]domain.Event] {
	return fetchList(ctx, r, operation{
		name:     "GetEventsByDate",
		request:  transport.Request{Method: http.MethodGet, Query: url.Values{"date": {date}}},
		fallback: fixed(MsgFetchEventsByDate),
	})
}

// GetEventsByDateRange lists events between two dates, inclusive
func (r *HTTPEventRepository) GetEventsByDateRange(ctx context.Context, from, to string) Result[[]domain.Event] {
	return fetchList(ctx, r, operation{
		name: "GetEventsByDateRange",
		request: transport.Request{Method: http.MethodGet, Query: url.Values{
			"date_from": {from},
			"date_to":   {to},
		}},
		fallback: fixed(MsgFetchEventsByRange),
	})
}

// GetEventsByStatus lists events with the given status
func (r *HTTPEventRepository) GetEventsByStatus(ctx context.Context, status string) Result[[]domain.Event] {
	return fetchList(ctx, r, operation{
		name:     "GetEventsByStatus",
		request:  transport.Request{Method: http.MethodGet, Query: url.Values{"status": {status}}},
		fallback: fixed(MsgFetchEventsByState),
	})
}

// GetStatistics fetches the per-status summary
func (r *HTTPEventRepository) GetStatistics(ctx context.Context) Result[domain.Statistics] {
	return fetchOne[domain.Statistics](ctx, r, operation{
		name:     "GetStatistics",
		request:  transport.Request{Method: http.MethodGet, Query: url.Values{"stats": {"1"}}},
		fallback: fixed(MsgFetchStatistics),
	})
}

// CreateEvent submits a new event; the id is assigned by the server
func (r *HTTPEventRepository) CreateEvent(ctx context.Context, event domain.Event) Result[domain.Event] {
	event.ID = nil
	return fetchOne[domain.Event](ctx, r, operation{
		name:     "CreateEvent",
		request:  transport.Request{Method: http.MethodPost, Body: event},
		fallback: fixed(MsgCreateEvent),
	})
}

// UpdateEvent replaces the event identified by id
func (r *HTTPEventRepository) UpdateEvent(ctx context.Context, id string, event domain.Event) Result[domain.Event] {
	return fetchOne[domain.Event](ctx, r, operation{
		name:     "UpdateEvent",
		request:  transport.Request{Method: http.MethodPut, Query: url.Values{"id": {id}}, Body: event},
		fallback: fixed(MsgUpdateEvent),
	})
}

// DeleteEvent removes the event identified by id
func (r *HTTPEventRepository) DeleteEvent(ctx context.Context, id string) Result[struct{}] {
	env, failure := call[any](ctx, r, operation{
		name:     "DeleteEvent",
		request:  transport.Request{Method: http.MethodDelete, Query: url.Values{"id": {id}}},
		fallback: fixed(MsgDeleteEvent),
	})
	if failure != nil {
		return Fail[struct{}](failure)
	}
	r.log.DebugContext(ctx, "event deleted", zap.String("id", id), zap.String("message", env.Message))
	return Ok(struct{}{})
}

// fetchList treats a null payload as an empty list
func fetchList(ctx context.Context, r *HTTPEventRepository, op operation) Result[[]domain.Event] {
	env, failure := call[[]domain.Event](ctx, r, op)
	if failure != nil {
		return Fail[[]domain.Event](failure)
	}
	if env.Data == nil || *env.Data == nil {
		return Ok([]domain.Event{})
	}
	return Ok(*env.Data)
}

// fetchOne fails on a null payload
func fetchOne[T any](ctx context.Context, r *HTTPEventRepository, op operation) Result[T] {
	env, failure := call[T](ctx, r, op)
	if failure != nil {
		return Fail[T](failure)
	}
	if env.Data == nil {
		f := &Failure{Kind: KindApplication, Message: op.fallback(env.Status), HTTPStatus: env.Status}
		r.log.WarnContext(ctx, "empty payload", zap.String("op", op.name))
		return Fail[T](f)
	}
	return Ok(*env.Data)
}

// call runs the request and normalizes every failure mode into a Failure
func call[T any](ctx context.Context, r *HTTPEventRepository, op operation) (*envelope.Envelope[T], *Failure) {
	ctx, span := telemetry.StartSpan(ctx, "repository."+op.name)
	defer span.End()
	span.SetAttributes(telemetry.OperationAttr(op.name), telemetry.MethodAttr(op.request.Method))
	if id := op.request.Query.Get("id"); id != "" {
		span.SetAttributes(telemetry.EventIDAttr(id))
	}
	if status := op.request.Query.Get("status"); status != "" {
		span.SetAttributes(telemetry.EventStatusAttr(status))
	}

	env, failure := exchange[T](ctx, r.client, op)
	if failure != nil {
		span.RecordError(failure)
		span.SetStatus(codes.Error, failure.Message)
		r.log.WarnContext(ctx, "operation failed",
			zap.String("op", op.name),
			zap.String("kind", string(failure.Kind)),
			zap.Int("status", failure.HTTPStatus),
			zap.String("message", failure.Message),
		)
		return nil, failure
	}

	r.log.DebugContext(ctx, "operation succeeded", zap.String("op", op.name), zap.Int("status", env.Status))
	return env, nil
}

func exchange[T any](ctx context.Context, client transport.Doer, op operation) (*envelope.Envelope[T], *Failure) {
	resp, err := client.Do(ctx, op.request)
	if err != nil {
		return nil, &Failure{Kind: KindTransport, Message: err.Error(), Err: err}
	}

	if !resp.IsSuccessful() || resp.Body == nil {
		return nil, &Failure{
			Kind:       KindApplication,
			Message:    op.fallback(resp.StatusCode),
			HTTPStatus: resp.StatusCode,
		}
	}

	env, err := envelope.Decode[T](resp.Body)
	if err != nil {
		return nil, &Failure{
			Kind:       KindTransport,
			Message:    "Malformed response from server",
			HTTPStatus: resp.StatusCode,
			Err:        err,
		}
	}

	if !env.IsSuccess() {
		msg := env.Message
		if msg == "" {
			msg = op.fallback(env.Status)
		}
		return nil, &Failure{Kind: KindApplication, Message: msg, HTTPStatus: env.Status}
	}

	return env, nil
}
