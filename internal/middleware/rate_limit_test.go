package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(10, 5)
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		if !rl.Allow("user-1") {
			t.Errorf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("user-1") {
		t.Error("request 6 should be rate limited")
	}
}

func TestRateLimiter_SeparateBuckets(t *testing.T) {
	rl := NewRateLimiter(10, 3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		rl.Allow("user-1")
	}
	if rl.Allow("user-1") {
		t.Error("user-1 should be rate limited")
	}
	for i := 0; i < 3; i++ {
		if !rl.Allow("user-2") {
			t.Errorf("user-2 request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_State(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	defer rl.Stop()

	remaining, _ := rl.State("unknown")
	if remaining != 2 {
		t.Errorf("remaining = %d, want full burst of 2", remaining)
	}

	rl.Allow("user-1")
	rl.Allow("user-1")
	remaining, resetAt := rl.State("user-1")
	if remaining != 0 {
		t.Errorf("remaining = %d, want 0", remaining)
	}
	if !resetAt.After(time.Now()) {
		t.Errorf("reset time %v should be in the future", resetAt)
	}
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl := NewRateLimiter(10, 1)
	defer rl.Stop()

	rl.Allow("user-1")
	rl.evictIdle(time.Now().Add(LimiterTTL + time.Second))

	if !rl.Allow("user-1") {
		t.Error("evicted caller should start with a fresh bucket")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	setup := func(rl *RateLimiter, userID string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if userID != "" {
				c.Set(UserIDKey, userID)
			}
			c.Next()
		})
		r.Use(RateLimit(rl))
		r.POST("/export", okHandler)
		return r
	}

	t.Run("sets_headers_on_success", func(t *testing.T) {
		rl := NewRateLimiter(20, 5)
		defer rl.Stop()

		rec := serve(setup(rl, "user-1"), httptest.NewRequest(http.MethodPost, "/export", http.NoBody))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got := rec.Header().Get("X-RateLimit-Limit"); got != "20" {
			t.Errorf("X-RateLimit-Limit = %q, want 20", got)
		}
		if got := rec.Header().Get("X-RateLimit-Remaining"); got != "4" {
			t.Errorf("X-RateLimit-Remaining = %q, want 4", got)
		}
	})

	t.Run("returns_429_when_exhausted", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)
		defer rl.Stop()
		r := setup(rl, "user-1")

		first := serve(r, httptest.NewRequest(http.MethodPost, "/export", http.NoBody))
		if first.Code != http.StatusOK {
			t.Fatalf("first request: expected 200, got %d", first.Code)
		}

		rec := serve(r, httptest.NewRequest(http.MethodPost, "/export", http.NoBody))
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "RATE_LIMITED" {
			t.Errorf("error code = %q, want RATE_LIMITED", code)
		}
		retry, err := strconv.Atoi(rec.Header().Get("Retry-After"))
		if err != nil || retry < 1 {
			t.Errorf("Retry-After = %q, want a positive number of seconds", rec.Header().Get("Retry-After"))
		}
	})

	t.Run("falls_back_to_client_ip", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)
		defer rl.Stop()
		r := setup(rl, "")

		serve(r, httptest.NewRequest(http.MethodPost, "/export", http.NoBody))
		rec := serve(r, httptest.NewRequest(http.MethodPost, "/export", http.NoBody))
		if rec.Code != http.StatusTooManyRequests {
			t.Errorf("expected 429 for repeated anonymous caller, got %d", rec.Code)
		}
	})
}
