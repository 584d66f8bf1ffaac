package stubserver

import (
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prohmpiriya/event-management/pkg/envelope"
)

// RateLimitConfig holds per-client token bucket settings
type RateLimitConfig struct {
	// Requests per second per client IP (0 = unlimited)
	RequestsPerSecond float64
	// Token bucket capacity
	Burst int
	// Idle buckets older than this are dropped
	EntryTTL time.Duration
}

type bucket struct {
	mu         sync.Mutex
	tokens     float64
	lastUpdate time.Time
}

// RateLimiter is an in-memory token bucket keyed by client
type RateLimiter struct {
	config  RateLimitConfig
	buckets sync.Map
	now     func() time.Time

	lastPrune atomic.Int64
	allowed   atomic.Uint64
	rejected  atomic.Uint64
}

// NewRateLimiter creates a limiter. Stale buckets are pruned on use.
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.Burst <= 0 {
		config.Burst = 1
	}
	if config.EntryTTL <= 0 {
		config.EntryTTL = time.Minute
	}
	return &RateLimiter{config: config, now: time.Now}
}

// Allow takes one token from key's bucket
func (rl *RateLimiter) Allow(key string) bool {
	now := rl.now()
	rl.prune(now)

	v, _ := rl.buckets.LoadOrStore(key, &bucket{tokens: float64(rl.config.Burst), lastUpdate: now})
	b := v.(*bucket)

	b.mu.Lock()
	defer b.mu.Unlock()

	elapsed := now.Sub(b.lastUpdate).Seconds()
	b.tokens = min(float64(rl.config.Burst), b.tokens+elapsed*rl.config.RequestsPerSecond)
	b.lastUpdate = now

	if b.tokens >= 1 {
		b.tokens--
		rl.allowed.Add(1)
		return true
	}
	rl.rejected.Add(1)
	return false
}

// Stats returns allowed and rejected counts
func (rl *RateLimiter) Stats() (allowed, rejected uint64) {
	return rl.allowed.Load(), rl.rejected.Load()
}

func (rl *RateLimiter) prune(now time.Time) {
	last := rl.lastPrune.Load()
	if now.UnixNano()-last < int64(rl.config.EntryTTL) {
		return
	}
	if !rl.lastPrune.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	cutoff := now.Add(-rl.config.EntryTTL)
	rl.buckets.Range(func(key, value any) bool {
		b := value.(*bucket)
		b.mu.Lock()
		if b.lastUpdate.Before(cutoff) {
			rl.buckets.Delete(key)
		}
		b.mu.Unlock()
		return true
	})
}

// RateLimit rejects clients that exceed the limiter with 429
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	limit := strconv.FormatFloat(rl.config.RequestsPerSecond, 'f', -1, 64)

	return func(c *gin.Context) {
		c.Header("X-RateLimit-Limit", limit)

		if !rl.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				envelope.Error(http.StatusTooManyRequests, "Rate limit exceeded. Please retry after 1 second(s)."))
			return
		}

		c.Next()
	}
}
