package stubserver

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prohmpiriya/event-management/internal/domain"
	"github.com/prohmpiriya/event-management/pkg/envelope"
)

// ErrEventNotFound is returned when no event has the requested id
var ErrEventNotFound = errors.New("event not found")

// EventFilter narrows a listing; zero fields match everything
type EventFilter struct {
	Date     string
	DateFrom string
	DateTo   string
	Status   domain.EventStatus
}

func (f EventFilter) match(e *domain.Event) bool {
	if f.Date != "" && e.Date != f.Date {
		return false
	}
	if f.DateFrom != "" && e.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && e.Date > f.DateTo {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	return true
}

// MemoryEventStore is an in-memory event table
type MemoryEventStore struct {
	mu     sync.RWMutex
	events map[string]*domain.Event
	now    func() time.Time
	newID  func() string
}

// NewMemoryEventStore creates an empty store
func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{
		events: make(map[string]*domain.Event),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Create stores a new event and returns it with id and timestamps set
func (s *MemoryEventStore) Create(ctx context.Context, event domain.Event) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := event.Clone()
	id := s.newID()
	ts := s.timestamp()
	created.ID = &id
	created.CreatedAt = &ts
	created.UpdatedAt = &ts

	s.events[id] = created
	return created.Clone(), nil
}

// Get retrieves an event by id
func (s *MemoryEventStore) Get(ctx context.Context, id string) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, exists := s.events[id]
	if !exists {
		return nil, ErrEventNotFound
	}
	return event.Clone(), nil
}

// Update replaces the mutable fields of an existing event
func (s *MemoryEventStore) Update(ctx context.Context, id string, event domain.Event) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.events[id]
	if !exists {
		return nil, ErrEventNotFound
	}

	updated := event.Clone()
	ts := s.timestamp()
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = &ts

	s.events[id] = updated
	return updated.Clone(), nil
}

// Delete removes an event
func (s *MemoryEventStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[id]; !exists {
		return ErrEventNotFound
	}
	delete(s.events, id)
	return nil
}

// List returns matching events ordered by date then time
func (s *MemoryEventStore) List(ctx context.Context, filter EventFilter) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Event, 0, len(s.events))
	for _, e := range s.events {
		if filter.match(e) {
			out = append(out, *e.Clone())
		}
	}

	slices.SortFunc(out, func(a, b domain.Event) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		if c := strings.Compare(a.Time, b.Time); c != 0 {
			return c
		}
		return strings.Compare(a.IDValue(), b.IDValue())
	})
	return out, nil
}

// Statistics counts events per status
func (s *MemoryEventStore) Statistics(ctx context.Context) (domain.Statistics, error) {
	events, err := s.List(ctx, EventFilter{})
	if err != nil {
		return domain.Statistics{}, err
	}
	return domain.ComputeStatistics(events), nil
}

// Len returns the number of stored events
func (s *MemoryEventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

func (s *MemoryEventStore) timestamp() string {
	return s.now().Format(envelope.TimestampLayout)
}

// Seed loads a handful of sample events
func (s *MemoryEventStore) Seed(ctx context.Context) error {
	capacity := func(n int) *int { return &n }
	desc := func(t string) *string { return &t }

	samples := []domain.Event{
		{Title: "Tech Conference 2025", Date: "2025-03-10", Time: "09:00", Location: "Jakarta Convention Center", Description: desc("Annual technology conference"), Capacity: capacity(500), Status: domain.StatusUpcoming},
		{Title: "Go Workshop", Date: "2025-03-12", Time: "13:00", Location: "Lab Komputer 2", Capacity: capacity(30), Status: domain.StatusUpcoming},
		{Title: "Seminar Kewirausahaan", Date: "2025-02-20", Time: "10:00", Location: "Aula Utama", Status: domain.StatusOngoing},
		{Title: "Bazaar Kampus", Date: "2025-01-18", Time: "08:00", Location: "Lapangan Parkir", Description: desc("Student bazaar"), Status: domain.StatusCompleted},
		{Title: "Konser Amal", Date: "2025-01-25", Time: "19:30", Location: "Gedung Serbaguna", Capacity: capacity(200), Status: domain.StatusCancelled},
	}

	for _, e := range samples {
		if _, err := s.Create(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
