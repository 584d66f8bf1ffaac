package viewmodel

import (
	"context"
	"sync"
)

// ReadOnly is the consumer view of an Observable
type ReadOnly[T any] interface {
	Get() T
	Subscribe(ctx context.Context) <-chan T
}

// Observable holds a single value and notifies subscribers on change.
// Slow subscribers only ever see the latest value.
type Observable[T any] struct {
	mu    sync.RWMutex
	value T
	subs  map[int]chan T
	next  int
}

// NewObservable creates an Observable with an initial value
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{value: initial, subs: make(map[int]chan T)}
}

// Get returns the current value
func (o *Observable[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.value
}

// Subscribe returns a channel that first receives the current value and then
// every later value. The channel is closed when ctx is done.
func (o *Observable[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	o.mu.Lock()
	id := o.next
	o.next++
	o.subs[id] = ch
	ch <- o.value
	o.mu.Unlock()

	go func() {
		<-ctx.Done()
		o.mu.Lock()
		delete(o.subs, id)
		close(ch)
		o.mu.Unlock()
	}()

	return ch
}

func (o *Observable[T]) set(v T) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.value = v
	for _, ch := range o.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}
