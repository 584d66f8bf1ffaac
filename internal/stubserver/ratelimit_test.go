package stubserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_TokenBucket(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 2, Burst: 2})
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "buckets are per key")

	now = now.Add(500 * time.Millisecond)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	allowed, rejected := rl.Stats()
	assert.Equal(t, uint64(4), allowed)
	assert.Equal(t, uint64(2), rejected)
}

func TestRateLimiter_PrunesIdleBuckets(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 1, EntryTTL: time.Minute})
	rl.now = func() time.Time { return now }

	rl.Allow("idle")
	now = now.Add(2 * time.Minute)
	rl.Allow("active")

	_, ok := rl.buckets.Load("idle")
	assert.False(t, ok)
	_, ok = rl.buckets.Load("active")
	assert.True(t, ok)
}

func TestRouter_RateLimited(t *testing.T) {
	store := NewMemoryEventStore()
	r := NewRouter(Config{
		Path:      "/event-api/api.php",
		RateLimit: RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1},
	}, store, nil)

	w, _ := do(t, r, http.MethodGet, "/event-api/api.php", "")
	require.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, r, http.MethodGet, "/event-api/api.php", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, http.StatusTooManyRequests, env.Status)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}
