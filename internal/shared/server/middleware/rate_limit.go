package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"applywise-backend/internal/shared/server/respond"
)

// RateLimitRule is one fixed-window allowance, e.g. 5 requests per minute.
type RateLimitRule struct {
	Limit  int
	Window time.Duration
}

func (r RateLimitRule) String() string {
	return fmt.Sprintf("%d per %s", r.Limit, r.Window)
}

// ParseRateLimitRules parses a rule literal of the form "5/minute;20/hour".
// All rules in the literal must hold for a request to pass.
func ParseRateLimitRules(literal string) ([]RateLimitRule, error) {
	var rules []RateLimitRule
	for _, part := range strings.Split(literal, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.SplitN(part, "/", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed rate limit rule %q", part)
		}
		limit, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("malformed rate limit count in %q", part)
		}
		var window time.Duration
		switch strings.ToLower(strings.TrimSpace(fields[1])) {
		case "second":
			window = time.Second
		case "minute":
			window = time.Minute
		case "hour":
			window = time.Hour
		case "day":
			window = 24 * time.Hour
		default:
			return nil, fmt.Errorf("unknown rate limit window in %q", part)
		}
		rules = append(rules, RateLimitRule{Limit: limit, Window: window})
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("empty rate limit literal %q", literal)
	}
	return rules, nil
}

// RateLimiter tracks fixed-window counters per key. Safe for concurrent use.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
	now     func() time.Time
}

type rateWindow struct {
	start time.Time
	count int
}

// NewRateLimiter constructs a RateLimiter. A nil now func defaults to time.Now.
func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		windows: make(map[string]*rateWindow),
		now:     now,
	}
}

// Allow reports whether one more request under the rule is permitted for key.
// When denied it returns how long until the window resets.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || rule.Limit <= 0 || rule.Window <= 0 {
		return true, 0
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= rule.Window {
		w = &rateWindow{start: now}
		l.windows[key] = w
	}
	if w.count < rule.Limit {
		w.count++
		return true, 0
	}
	return false, rule.Window - now.Sub(w.start)
}

// RateLimit enforces the given rule literal per client IP on the route it
// wraps. The literal is fixed at registration time; a malformed one is a
// programming error and panics at startup.
func RateLimit(literal string, limiter *RateLimiter) gin.HandlerFunc {
	rules, err := ParseRateLimitRules(literal)
	if err != nil {
		panic(err)
	}
	if limiter == nil {
		limiter = NewRateLimiter(nil)
	}
	return func(c *gin.Context) {
		principal := strings.TrimSpace(c.ClientIP())
		route := c.FullPath()
		for _, rule := range rules {
			key := principal + "|" + c.Request.Method + " " + route + "|" + rule.Window.String()
			allowed, retryAfter := limiter.Allow(key, rule)
			if allowed {
				continue
			}
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds <= 0 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			respond.Error(c, http.StatusTooManyRequests, "Rate limit exceeded: "+rule.String())
			return
		}
		c.Next()
	}
}
