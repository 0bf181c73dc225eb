package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestAllowConsumesBurstThenRefills(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 3}

	for i := 0; i < 3; i++ {
		if ok, _ := limiter.Allow("1.2.3.4", rule); !ok {
			t.Fatalf("request %d denied within burst", i)
		}
	}
	ok, retryAfter := limiter.Allow("1.2.3.4", rule)
	if ok {
		t.Fatal("request allowed past burst")
	}
	if retryAfter <= 0 {
		t.Fatalf("retryAfter = %v", retryAfter)
	}

	now = now.Add(2 * time.Second)
	if ok, _ := limiter.Allow("1.2.3.4", rule); !ok {
		t.Fatal("request denied after refill window")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("a", rule); !ok {
		t.Fatal("first key denied")
	}
	if ok, _ := limiter.Allow("a", rule); ok {
		t.Fatal("first key not exhausted")
	}
	if ok, _ := limiter.Allow("b", rule); !ok {
		t.Fatal("second key affected by first key's bucket")
	}
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(RateLimit(limiter, RateLimitRule{Rate: 1, Burst: 1}))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatal("Retry-After header missing")
	}
}
