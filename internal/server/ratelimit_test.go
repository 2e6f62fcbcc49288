package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_Consume(t *testing.T) {
	now := time.Now()
	bucket := &TokenBucket{
		tokens:     5,
		capacity:   10,
		refillRate: 60, // one per second
		lastRefill: now,
	}

	for i := range 5 {
		result := bucket.consume(now)
		assert.True(t, result.Allowed)
		assert.Equal(t, 4-i, result.Remaining)
	}

	result := bucket.consume(now)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Equal(t, time.Second, result.RetryAfter)
}

func TestTokenBucket_Refill(t *testing.T) {
	now := time.Now()

	t.Run("refills with elapsed time", func(t *testing.T) {
		bucket := &TokenBucket{capacity: 10, refillRate: 60, lastRefill: now.Add(-3 * time.Second)}
		result := bucket.consume(now)
		assert.True(t, result.Allowed)
		assert.Equal(t, 2, result.Remaining)
	})

	t.Run("never exceeds capacity", func(t *testing.T) {
		bucket := &TokenBucket{tokens: 5, capacity: 10, refillRate: 60, lastRefill: now.Add(-10 * time.Minute)}
		bucket.refill(now)
		assert.Equal(t, 10, bucket.tokens)
	})

	t.Run("ignores sub-second gaps", func(t *testing.T) {
		last := now.Add(-500 * time.Millisecond)
		bucket := &TokenBucket{capacity: 10, refillRate: 60, lastRefill: last}
		bucket.refill(now)
		assert.Equal(t, 0, bucket.tokens)
		assert.Equal(t, last, bucket.lastRefill)
	})
}

func TestRateLimiter_Check(t *testing.T) {
	limiter := NewRateLimiter(&RateLimitConfig{RequestsPerMinute: 60, BurstSize: 3, Enabled: true}, nil)
	defer limiter.Stop()

	now := time.Now()
	limiter.now = func() time.Time { return now }

	for i := range 3 {
		result := limiter.Check("10.0.0.1")
		require.True(t, result.Allowed)
		assert.Equal(t, 2-i, result.Remaining)
	}
	assert.False(t, limiter.Check("10.0.0.1").Allowed)
	assert.True(t, limiter.Check("10.0.0.2").Allowed, "buckets are per client")

	now = now.Add(2 * time.Second)
	assert.True(t, limiter.Check("10.0.0.1").Allowed)
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(&RateLimitConfig{RequestsPerMinute: 1, BurstSize: 1, Enabled: false}, nil)
	defer limiter.Stop()

	for range 10 {
		assert.True(t, limiter.Check("10.0.0.1").Allowed)
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	limiter := NewRateLimiter(nil, nil)
	defer limiter.Stop()

	now := time.Now()
	limiter.now = func() time.Time { return now }
	limiter.Check("idle")

	now = now.Add(11 * time.Minute)
	limiter.Check("active")
	limiter.performCleanup()

	limiter.bucketMutex.RLock()
	defer limiter.bucketMutex.RUnlock()
	assert.NotContains(t, limiter.buckets, "idle")
	assert.Contains(t, limiter.buckets, "active")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	limiter := NewRateLimiter(nil, nil)
	limiter.Stop()
	assert.NotPanics(t, limiter.Stop)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "192.168.1.5:4321", "192.168.1.5"},
		{"forwarded for", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.1:80", "203.0.113.7"},
		{"invalid forwarded for", map[string]string{"X-Forwarded-For": "not-an-ip", "X-Real-IP": "198.51.100.2"}, "10.0.0.1:80", "198.51.100.2"},
		{"bare remote", nil, "pipe", "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}
