package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestIPLimiterExhaustsBurst(t *testing.T) {
	l := newIPLimiter(rate.Limit(0.001), 2)
	now := time.Now()

	if !l.allow("1.2.3.4", now) {
		t.Error("first request should pass")
	}
	if !l.allow("1.2.3.4", now) {
		t.Error("second request should pass")
	}
	if l.allow("1.2.3.4", now) {
		t.Error("third request should be limited")
	}

	// Other IPs have their own bucket.
	if !l.allow("5.6.7.8", now) {
		t.Error("a different IP should not be affected")
	}
}

func TestIPLimiterEvictsIdleBuckets(t *testing.T) {
	l := newIPLimiter(rate.Limit(1), 1)
	base := time.Now()

	for _, ip := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		l.allow(ip, base)
	}
	if got := l.size(); got != 3 {
		t.Fatalf("size = %d, want 3", got)
	}

	// Past the idle window, the next request sweeps the stale buckets.
	later := base.Add(limiterIdleAfter + limiterSweepEvery)
	l.allow("9.9.9.9", later)

	if got := l.size(); got != 1 {
		t.Errorf("size after sweep = %d, want 1", got)
	}
}

func TestIPLimiterKeepsActiveBucketsOnSweep(t *testing.T) {
	l := newIPLimiter(rate.Limit(1), 1)
	base := time.Now()

	l.allow("1.1.1.1", base)
	// Stays active halfway through the idle window.
	l.allow("1.1.1.1", base.Add(limiterIdleAfter/2))

	l.allow("9.9.9.9", base.Add(limiterSweepEvery+limiterIdleAfter/2))

	if got := l.size(); got != 2 {
		t.Errorf("size = %d, want 2 (active bucket must survive the sweep)", got)
	}
}

func TestRateLimitPerIPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimitPerIP(rate.Limit(0.001), 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do(); code != http.StatusOK {
		t.Errorf("first request = %d, want 200", code)
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Errorf("second request = %d, want 429", code)
	}
}
