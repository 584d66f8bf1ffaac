package viewmodel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func TestObservable_GetAndSet(t *testing.T) {
	o := NewObservable(1)
	assert.Equal(t, 1, o.Get())
	o.set(2)
	assert.Equal(t, 2, o.Get())
}

func TestObservable_SubscribeReceivesCurrentThenLatest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	o := NewObservable("a")
	ch := o.Subscribe(ctx)
	assert.Equal(t, "a", receive(t, ch))

	o.set("b")
	o.set("c")
	assert.Equal(t, "c", receive(t, ch))

	select {
	case v := <-ch:
		t.Fatalf("unexpected extra value %q", v)
	default:
	}
}

func TestObservable_SubscriptionClosedOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	o := NewObservable(0)
	ch := o.Subscribe(ctx)
	receive(t, ch)

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	o.set(5)
	assert.Equal(t, 5, o.Get())
}
