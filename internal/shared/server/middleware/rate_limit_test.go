package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestParseRateLimitRules(t *testing.T) {
	rules, err := ParseRateLimitRules("5/minute;20/hour")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if rules[0].Limit != 5 || rules[0].Window != time.Minute {
		t.Fatalf("unexpected first rule: %+v", rules[0])
	}
	if rules[1].Limit != 20 || rules[1].Window != time.Hour {
		t.Fatalf("unexpected second rule: %+v", rules[1])
	}

	for _, bad := range []string{"", "five/minute", "5/fortnight", "0/minute", "5"} {
		if _, err := ParseRateLimitRules(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Limit: 2, Window: time.Minute}

	for i := 0; i < 2; i++ {
		if ok, _ := limiter.Allow("k", rule); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	ok, retryAfter := limiter.Allow("k", rule)
	if ok {
		t.Fatalf("third request should be denied")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Fatalf("unexpected retry-after: %v", retryAfter)
	}

	// Advancing past the window opens a fresh allowance.
	now = now.Add(time.Minute)
	if ok, _ := limiter.Allow("k", rule); !ok {
		t.Fatalf("request after window reset should be allowed")
	}
}

func TestRateLimiterIsolatesKeys(t *testing.T) {
	limiter := NewRateLimiter(nil)
	rule := RateLimitRule{Limit: 1, Window: time.Minute}

	if ok, _ := limiter.Allow("a", rule); !ok {
		t.Fatalf("first key should be allowed")
	}
	if ok, _ := limiter.Allow("b", rule); !ok {
		t.Fatalf("second key should be allowed independently")
	}
	if ok, _ := limiter.Allow("a", rule); ok {
		t.Fatalf("first key should now be exhausted")
	}
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	limiter := NewRateLimiter(nil)
	r.GET("/limited", RateLimit("2/minute", limiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestRateLimitMiddlewarePanicsOnBadLiteral(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for malformed literal")
		}
	}()
	RateLimit("lots/sometimes", nil)
}
