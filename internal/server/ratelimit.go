package server

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/conneroisu/blockcraft/internal/errors"
	"github.com/conneroisu/blockcraft/internal/logging"
)

// RateLimitConfig sizes the per-client token buckets.
type RateLimitConfig struct {
	RequestsPerMinute int
	BurstSize         int
	Enabled           bool
}

// RateLimiter implements token bucket rate limiting per client key.
type RateLimiter struct {
	buckets     map[string]*TokenBucket
	bucketMutex sync.RWMutex
	config      *RateLimitConfig
	logger      logging.Logger
	now         func() time.Time
	cleaner     *time.Ticker
	stopCleaner chan struct{}
	stopOnce    sync.Once
}

// TokenBucket holds the budget of one client.
type TokenBucket struct {
	tokens     int
	capacity   int
	refillRate int // tokens per minute
	lastRefill time.Time
	lastAccess time.Time
	mutex      sync.Mutex
}

// RateLimitResult is the outcome of one check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
	ResetTime  time.Time
}

// NewRateLimiter creates a limiter. A nil config allows 60 requests per
// minute with a burst of 10.
func NewRateLimiter(config *RateLimitConfig, logger logging.Logger) *RateLimiter {
	if config == nil {
		config = &RateLimitConfig{RequestsPerMinute: 60, BurstSize: 10, Enabled: true}
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	rl := &RateLimiter{
		buckets:     make(map[string]*TokenBucket),
		config:      config,
		logger:      logger,
		now:         time.Now,
		cleaner:     time.NewTicker(5 * time.Minute),
		stopCleaner: make(chan struct{}),
	}
	go rl.cleanupExpiredBuckets()

	return rl
}

// Check consumes one token for key.
func (rl *RateLimiter) Check(key string) RateLimitResult {
	if !rl.config.Enabled {
		return RateLimitResult{Allowed: true, Remaining: rl.config.BurstSize}
	}
	return rl.getBucket(key).consume(rl.now())
}

func (rl *RateLimiter) getBucket(key string) *TokenBucket {
	now := rl.now()

	rl.bucketMutex.RLock()
	bucket, exists := rl.buckets[key]
	rl.bucketMutex.RUnlock()
	if exists {
		return bucket
	}

	rl.bucketMutex.Lock()
	defer rl.bucketMutex.Unlock()

	if bucket, exists := rl.buckets[key]; exists {
		return bucket
	}
	bucket = &TokenBucket{
		tokens:     rl.config.BurstSize,
		capacity:   rl.config.BurstSize,
		refillRate: rl.config.RequestsPerMinute,
		lastRefill: now,
		lastAccess: now,
	}
	rl.buckets[key] = bucket
	return bucket
}

func (tb *TokenBucket) consume(now time.Time) RateLimitResult {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tb.lastAccess = now
	tb.refill(now)

	if tb.tokens > 0 {
		tb.tokens--
		return RateLimitResult{
			Allowed:   true,
			Remaining: tb.tokens,
			ResetTime: now.Add(time.Minute),
		}
	}

	retryAfter := time.Minute / time.Duration(tb.refillRate)
	return RateLimitResult{
		Allowed:    false,
		RetryAfter: retryAfter,
		ResetTime:  now.Add(retryAfter),
	}
}

func (tb *TokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastRefill)
	if elapsed < time.Second {
		return
	}

	tokensToAdd := int(elapsed.Minutes() * float64(tb.refillRate))
	if tokensToAdd > 0 {
		tb.tokens = min(tb.tokens+tokensToAdd, tb.capacity)
		tb.lastRefill = now
	}
}

func (rl *RateLimiter) cleanupExpiredBuckets() {
	for {
		select {
		case <-rl.cleaner.C:
			rl.performCleanup()
		case <-rl.stopCleaner:
			rl.cleaner.Stop()
			return
		}
	}
}

// performCleanup drops buckets idle for ten minutes.
func (rl *RateLimiter) performCleanup() {
	rl.bucketMutex.Lock()
	defer rl.bucketMutex.Unlock()

	now := rl.now()
	for key, bucket := range rl.buckets {
		bucket.mutex.Lock()
		if now.Sub(bucket.lastAccess) > 10*time.Minute {
			delete(rl.buckets, key)
		}
		bucket.mutex.Unlock()
	}
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleaner) })
}

// RateLimitMiddleware rejects clients over budget with 429.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)
			result := limiter.Check(clientIP)

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limiter.config.RequestsPerMinute))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime.Unix()))

			if !result.Allowed {
				w.Header().Set("Retry-After", fmt.Sprintf("%.0f", result.RetryAfter.Seconds()))
				err := errors.RateLimited("Rate limit exceeded")
				limiter.logger.Warn(r.Context(), err, "Rate limit exceeded",
					"client_ip", clientIP,
					"path", r.URL.Path)
				writeJSON(w, errors.HTTPStatus(err), errors.Payload(err))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then
// the connection address.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
