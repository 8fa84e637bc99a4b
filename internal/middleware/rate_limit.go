package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "budgetlens/internal/errors"
	"budgetlens/internal/logger"
)

const (
	// CleanupInterval is the interval for cleaning up stale limiters
	CleanupInterval = 5 * time.Minute
	// LimiterTTL is the time-to-live for inactive limiters
	LimiterTTL = 10 * time.Minute
)

// RateLimiter keeps one token bucket per caller.
type RateLimiter struct {
	limiters          map[string]*limiterEntry
	mu                sync.Mutex
	requestsPerMinute int
	rateLimit         rate.Limit
	burstSize         int
	stopCh            chan struct{}
	stopOnce          sync.Once
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter allowing requestsPerMinute per caller
// with bursts of up to burstSize. Call Stop to release the cleanup goroutine.
func NewRateLimiter(requestsPerMinute, burstSize int) *RateLimiter {
	if burstSize < 1 {
		burstSize = 1
	}
	rl := &RateLimiter{
		limiters:          make(map[string]*limiterEntry),
		requestsPerMinute: requestsPerMinute,
		rateLimit:         rate.Limit(float64(requestsPerMinute) / 60.0),
		burstSize:         burstSize,
		stopCh:            make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Allow reports whether a request from key may proceed, consuming a token if so.
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entry(key).limiter.Allow()
}

// entry returns the limiter for key. r.mu must be held.
func (r *RateLimiter) entry(key string) *limiterEntry {
	e, ok := r.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(r.rateLimit, r.burstSize)}
		r.limiters[key] = e
	}
	e.lastSeen = time.Now()
	return e
}

// State returns the tokens left for key and when the bucket will be full again.
func (r *RateLimiter) State(key string) (remaining int, resetAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	e, ok := r.limiters[key]
	if !ok {
		return r.burstSize, now
	}

	tokens := int(e.limiter.TokensAt(now))
	if tokens < 0 {
		tokens = 0
	}
	if r.rateLimit <= 0 {
		return tokens, now
	}
	missing := float64(r.burstSize - tokens)
	return tokens, now.Add(time.Duration(missing / float64(r.rateLimit) * float64(time.Second)))
}

// cleanup periodically removes stale limiters to prevent memory leaks
func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle(time.Now())
		case <-r.stopCh:
			return
		}
	}
}

func (r *RateLimiter) evictIdle(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, e := range r.limiters {
		if now.Sub(e.lastSeen) > LimiterTTL {
			delete(r.limiters, key)
		}
	}
}

// Stop stops the cleanup goroutine
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// RateLimit returns a Gin middleware that limits each authenticated user, or
// each client IP before auth, and answers 429 with Retry-After when the
// bucket is empty.
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString(UserIDKey)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		allowed := rl.Allow(key)
		remaining, resetAt := rl.State(key)
		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(rl.requestsPerMinute))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			h.Set("Retry-After", strconv.Itoa(retryAfter))

			logger.Get().Warnw("rate limit exceeded",
				"key", key,
				"path", c.FullPath(),
				"retry_after", retryAfter,
			)
			abortWithError(c, apperrors.ErrRateLimited)
			return
		}

		c.Next()
	}
}
