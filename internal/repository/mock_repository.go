package repository

import (
	"context"
	"sync"

	"github.com/prohmpiriya/event-management/internal/domain"
)

// MockEventRepository is a configurable in-memory EventRepository for tests.
// Results default to empty successes; every call is counted.
type MockEventRepository struct {
	mu    sync.Mutex
	calls map[string]int

	AllEvents    Result[[]domain.Event]
	EventByID    Result[domain.Event]
	ByDate       Result[[]domain.Event]
	ByRange      Result[[]domain.Event]
	ByStatus     Result[[]domain.Event]
	Statistics   Result[domain.Statistics]
	Created      Result[domain.Event]
	Updated      Result[domain.Event]
	Deleted      Result[struct{}]
	LastCreated  *domain.Event
	LastUpdated  *domain.Event
	LastUpdateID string

	// Block, when set, makes every call wait for ctx to finish or the channel to close
	Block chan struct{}
	// OnCall runs at the start of every call with the method name
	OnCall func(method string)
}

// NewMockEventRepository creates a mock with empty successful results
func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{
		calls:      make(map[string]int),
		AllEvents:  Ok([]domain.Event{}),
		ByDate:     Ok([]domain.Event{}),
		ByRange:    Ok([]domain.Event{}),
		ByStatus:   Ok([]domain.Event{}),
		Statistics: Ok(domain.Statistics{}),
		EventByID:  Fail[domain.Event](&Failure{Kind: KindApplication, Message: MsgEventNotFound}),
		Created:    Fail[domain.Event](&Failure{Kind: KindApplication, Message: MsgCreateEvent}),
		Updated:    Fail[domain.Event](&Failure{Kind: KindApplication, Message: MsgUpdateEvent}),
		Deleted:    Ok(struct{}{}),
	}
}

// Calls returns how many times method was invoked
func (m *MockEventRepository) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// TotalCalls returns the number of calls across all methods
func (m *MockEventRepository) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func (m *MockEventRepository) record(ctx context.Context, method string) bool {
	m.mu.Lock()
	m.calls[method]++
	hook := m.OnCall
	block := m.Block
	m.mu.Unlock()

	if hook != nil {
		hook(method)
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return false
		}
	}
	return true
}

func cancelledFailure[T any](ctx context.Context) Result[T] {
	return Fail[T](&Failure{Kind: KindTransport, Message: ctx.Err().Error(), Err: ctx.Err()})
}

func (m *MockEventRepository) GetAllEvents(ctx context.Context) Result[[]domain.Event] {
	if !m.record(ctx, "GetAllEvents") {
		return cancelledFailure[[]domain.Event](ctx)
	}
	return m.AllEvents
}

func (m *MockEventRepository) GetEventByID(ctx context.Context, id string) Result[domain.Event] {
	if !m.record(ctx, "GetEventByID") {
		return cancelledFailure[domain.Event](ctx)
	}
	return m.EventByID
}

func (m *MockEventRepository) GetEventsByDate(ctx context.Context, date string) Result[[]domain.Event] {
	if !m.record(ctx, "GetEventsByDate") {
		return cancelledFailure[[]domain.Event](ctx)
	}
	return m.ByDate
}

func (m *MockEventRepository) GetEventsByDateRange(ctx context.Context, from, to string) Result[[]domain.Event] {
	if !m.record(ctx, "GetEventsByDateRange") {
		return cancelledFailure[[]domain.Event](ctx)
	}
	return m.ByRange
}

func (m *MockEventRepository) GetEventsByStatus(ctx context.Context, status string) Result[[]domain.Event] {
	if !m.record(ctx, "GetEventsByStatus") {
		return cancelledFailure[[]domain.Event](ctx)
	}
	return m.ByStatus
}

func (m *MockEventRepository) GetStatistics(ctx context.Context) Result[domain.Statistics] {
	if !m.record(ctx, "GetStatistics") {
		return cancelledFailure[domain.Statistics](ctx)
	}
	return m.Statistics
}

func (m *MockEventRepository) CreateEvent(ctx context.Context, event domain.Event) Result[domain.Event] {
	if !m.record(ctx, "CreateEvent") {
		return cancelledFailure[domain.Event](ctx)
	}
	m.mu.Lock()
	m.LastCreated = event.Clone()
	m.mu.Unlock()
	return m.Created
}

func (m *MockEventRepository) UpdateEvent(ctx context.Context, id string, event domain.Event) Result[domain.Event] {
	if !m.record(ctx, "UpdateEvent") {
		return cancelledFailure[domain.Event](ctx)
	}
	m.mu.Lock()
	m.LastUpdated = event.Clone()
	m.LastUpdateID = id
	m.mu.Unlock()
	return m.Updated
}

func (m *MockEventRepository) DeleteEvent(ctx context.Context, id string) Result[struct{}] {
	if !m.record(ctx, "DeleteEvent") {
		return cancelledFailure[struct{}](ctx)
	}
	return m.Deleted
}

var _ EventRepository = (*MockEventRepository)(nil)
var _ EventRepository = (*HTTPEventRepository)(nil)
