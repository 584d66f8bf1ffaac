package viewmodel

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/prohmpiriya/event-management/internal/domain"
	"github.com/prohmpiriya/event-management/internal/repository"
	"github.com/prohmpiriya/event-management/pkg/logger"
)

// EventViewModel mediates between the presentation layer and the repository.
// It owns all observable UI state; every field is replaced atomically, but
// updates across fields are not atomic as a group.
type EventViewModel struct {
	repo   repository.EventRepository
	log    *logger.Logger
	locale domain.Locale

	events         *Observable[[]domain.Event]
	selectedEvent  *Observable[*domain.Event]
	editEvent      *Observable[*domain.Event]
	statistics     *Observable[*domain.Statistics]
	isLoading      *Observable[bool]
	errorMessage   *Observable[*string]
	successMessage *Observable[*string]

	wg sync.WaitGroup
}

// Option configures an EventViewModel
type Option func(*EventViewModel)

// WithLocale sets the language of success messages
func WithLocale(locale domain.Locale) Option {
	return func(vm *EventViewModel) {
		vm.locale = locale
	}
}

// WithLogger sets the logger
func WithLogger(log *logger.Logger) Option {
	return func(vm *EventViewModel) {
		if log != nil {
			vm.log = log
		}
	}
}

// NewEventViewModel creates a view model in its initial state
func NewEventViewModel(repo repository.EventRepository, opts ...Option) *EventViewModel {
	vm := &EventViewModel{
		repo:           repo,
		log:            logger.Nop(),
		locale:         domain.LocaleID,
		events:         NewObservable([]domain.Event{}),
		selectedEvent:  NewObservable[*domain.Event](nil),
		editEvent:      NewObservable[*domain.Event](nil),
		statistics:     NewObservable[*domain.Statistics](nil),
		isLoading:      NewObservable(false),
		errorMessage:   NewObservable[*string](nil),
		successMessage: NewObservable[*string](nil),
	}
	for _, opt := range opts {
		opt(vm)
	}
	vm.log = vm.log.Named("viewmodel")
	return vm
}

// --- Observable state ---

func (vm *EventViewModel) Events() ReadOnly[[]domain.Event]         { return vm.events }
func (vm *EventViewModel) SelectedEvent() ReadOnly[*domain.Event]   { return vm.selectedEvent }
func (vm *EventViewModel) EditEvent() ReadOnly[*domain.Event]       { return vm.editEvent }
func (vm *EventViewModel) Statistics() ReadOnly[*domain.Statistics] { return vm.statistics }
func (vm *EventViewModel) IsLoading() ReadOnly[bool]                { return vm.isLoading }
func (vm *EventViewModel) ErrorMessage() ReadOnly[*string]          { return vm.errorMessage }
func (vm *EventViewModel) SuccessMessage() ReadOnly[*string]        { return vm.successMessage }

// Locale returns the locale used for success messages
func (vm *EventViewModel) Locale() domain.Locale {
	return vm.locale
}

// --- Async launching ---

// Go runs action in its own goroutine. The returned channel is closed once
// the action has finished.
func (vm *EventViewModel) Go(ctx context.Context, action func(context.Context)) <-chan struct{} {
	done := make(chan struct{})
	vm.wg.Add(1)
	go func() {
		defer vm.wg.Done()
		defer close(done)
		action(ctx)
	}()
	return done
}

// Wait blocks until every action started with Go has finished
func (vm *EventViewModel) Wait() {
	vm.wg.Wait()
}

// --- Remote actions ---

// LoadAllEvents replaces the list with every event
func (vm *EventViewModel) LoadAllEvents(ctx context.Context) {
	vm.loadList(ctx, "load_all", MsgLoadEvents, vm.repo.GetAllEvents)
}

// LoadEventsByDate replaces the list with the events of one date
func (vm *EventViewModel) LoadEventsByDate(ctx context.Context, date string) {
	vm.loadList(ctx, "load_by_date", MsgLoadEventsByDate, func(ctx context.Context) repository.Result[[]domain.Event] {
		return vm.repo.GetEventsByDate(ctx, date)
	})
}

// LoadEventsByDateRange replaces the list with the events between two dates
func (vm *EventViewModel) LoadEventsByDateRange(ctx context.Context, from, to string) {
	vm.loadList(ctx, "load_by_range", MsgLoadEvents, func(ctx context.Context) repository.Result[[]domain.Event] {
		return vm.repo.GetEventsByDateRange(ctx, from, to)
	})
}

// LoadEventsByStatus replaces the list with the events of one status
func (vm *EventViewModel) LoadEventsByStatus(ctx context.Context, status string) {
	vm.loadList(ctx, "load_by_status", MsgFilterEvents, func(ctx context.Context) repository.Result[[]domain.Event] {
		return vm.repo.GetEventsByStatus(ctx, status)
	})
}

func (vm *EventViewModel) loadList(ctx context.Context, action, fallback string, fetch func(context.Context) repository.Result[[]domain.Event]) {
	ctx = withAction(ctx, action)
	vm.begin(false)
	defer vm.isLoading.set(false)

	vm.applyList(ctx, fallback, fetch)
}

// applyList fetches a list and publishes it, leaving the loading flag and
// the pending messages to the caller
func (vm *EventViewModel) applyList(ctx context.Context, fallback string, fetch func(context.Context) repository.Result[[]domain.Event]) {
	result := fetch(ctx)
	if cancelled(ctx) {
		vm.log.DebugContext(ctx, "action cancelled")
		return
	}

	if result.IsSuccess() {
		vm.events.set(slices.Clone(result.Value()))
		vm.log.DebugContext(ctx, "events loaded", zap.Int("count", len(result.Value())))
		return
	}

	vm.fail(ctx, result.Failure(), fallback)
	vm.events.set([]domain.Event{})
}

// LoadEventByID sets the selected event
func (vm *EventViewModel) LoadEventByID(ctx context.Context, id string) {
	ctx = withAction(ctx, "load_by_id")
	vm.begin(false)
	defer vm.isLoading.set(false)

	result := vm.repo.GetEventByID(ctx, id)
	if cancelled(ctx) {
		return
	}

	if result.IsSuccess() {
		event := result.Value()
		vm.selectedEvent.set(&event)
		return
	}

	vm.fail(ctx, result.Failure(), MsgEventNotFound)
	vm.selectedEvent.set(nil)
}

// LoadStatistics refreshes the statistics without touching the loading flag
func (vm *EventViewModel) LoadStatistics(ctx context.Context) {
	ctx = withAction(ctx, "load_statistics")

	result := vm.repo.GetStatistics(ctx)
	if cancelled(ctx) {
		return
	}

	if result.IsSuccess() {
		stats := result.Value()
		vm.statistics.set(&stats)
		return
	}

	vm.fail(ctx, result.Failure(), MsgLoadStatistics)
}

// CreateEvent submits a new event. onSuccess may be nil.
func (vm *EventViewModel) CreateEvent(ctx context.Context, event domain.Event, onSuccess func()) {
	ctx = withAction(ctx, "create")
	vm.begin(true)
	defer vm.isLoading.set(false)

	result := vm.repo.CreateEvent(ctx, event)
	if cancelled(ctx) {
		return
	}

	if !result.IsSuccess() {
		vm.fail(ctx, result.Failure(), MsgCreateEvent)
		return
	}

	vm.succeed(ctx, successCreated, onSuccess)
}

// UpdateEvent submits changes of an existing event. The event must carry
// its id; otherwise nothing is sent and only the error message is set.
func (vm *EventViewModel) UpdateEvent(ctx context.Context, event domain.Event, onSuccess func()) {
	ctx = withAction(ctx, "update")
	if !event.HasID() {
		vm.log.DebugContext(ctx, "update rejected", zap.Error(domain.ErrMissingID))
		vm.setError(domain.MissingIDMessage)
		return
	}

	vm.begin(true)
	defer vm.isLoading.set(false)

	result := vm.repo.UpdateEvent(ctx, event.IDValue(), event)
	if cancelled(ctx) {
		return
	}

	if !result.IsSuccess() {
		vm.fail(ctx, result.Failure(), MsgUpdateEvent)
		return
	}

	updated := result.Value()
	vm.selectedEvent.set(&updated)
	vm.editEvent.set(nil)
	vm.succeed(ctx, successUpdated, onSuccess)
}

// DeleteEvent removes an event by id. onSuccess may be nil.
func (vm *EventViewModel) DeleteEvent(ctx context.Context, id string, onSuccess func()) {
	ctx = withAction(ctx, "delete")
	vm.begin(true)
	defer vm.isLoading.set(false)

	result := vm.repo.DeleteEvent(ctx, id)
	if cancelled(ctx) {
		return
	}

	if !result.IsSuccess() {
		vm.fail(ctx, result.Failure(), MsgDeleteEvent)
		return
	}

	vm.succeed(ctx, successDeleted, onSuccess)
}

// --- Local mutators ---

// SetEditEvent stores the draft being edited
func (vm *EventViewModel) SetEditEvent(event domain.Event) {
	vm.editEvent.set(event.Clone())
}

// ClearEditEvent drops the draft
func (vm *EventViewModel) ClearEditEvent() {
	vm.editEvent.set(nil)
}

// ClearErrorMessage dismisses the error message
func (vm *EventViewModel) ClearErrorMessage() {
	vm.errorMessage.set(nil)
}

// ClearSuccessMessage dismisses the success message
func (vm *EventViewModel) ClearSuccessMessage() {
	vm.successMessage.set(nil)
}

// ClearSelectedEvent drops the selected event
func (vm *EventViewModel) ClearSelectedEvent() {
	vm.selectedEvent.set(nil)
}

// --- helpers ---

func (vm *EventViewModel) begin(write bool) {
	vm.isLoading.set(true)
	vm.errorMessage.set(nil)
	if write {
		vm.successMessage.set(nil)
	}
}

func (vm *EventViewModel) fail(ctx context.Context, failure *repository.Failure, fallback string) {
	msg := fallback
	if failure != nil && failure.Message != "" {
		msg = failure.Message
	}
	vm.log.DebugContext(ctx, "action failed", zap.String("message", msg))
	vm.setError(msg)
}

func (vm *EventViewModel) setError(msg string) {
	vm.errorMessage.set(&msg)
}

// succeed publishes the success message, refreshes list and statistics, then
// calls onSuccess
func (vm *EventViewModel) succeed(ctx context.Context, key successKey, onSuccess func()) {
	msg := successMessage(vm.locale, key)
	vm.successMessage.set(&msg)
	vm.log.DebugContext(ctx, "action succeeded", zap.String("message", msg))

	vm.refresh(ctx)
	if cancelled(ctx) {
		return
	}
	if onSuccess != nil {
		onSuccess()
	}
}

// refresh reloads list and statistics inside a running write. The write
// owns the loading flag and has already cleared the error, so a failure of
// either reload stays visible.
func (vm *EventViewModel) refresh(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vm.applyList(withAction(gctx, "refresh_events"), MsgLoadEvents, vm.repo.GetAllEvents)
		return nil
	})
	g.Go(func() error {
		vm.LoadStatistics(gctx)
		return nil
	})
	_ = g.Wait()
}

func cancelled(ctx context.Context) bool {
	return ctx.Err() != nil
}

func withAction(ctx context.Context, action string) context.Context {
	return context.WithValue(ctx, logger.ActionKey, action)
}
