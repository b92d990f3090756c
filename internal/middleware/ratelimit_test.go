package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// ===== Allow =====

func TestRateLimiter_AllowWithinBudget(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 5, Window: time.Minute, Burst: 2})
	defer rl.Stop()

	// rate + burst requests should all pass
	for i := 0; i < 7; i++ {
		allowed, _, _ := rl.Allow("client-a")
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	allowed, remaining, _ := rl.Allow("client-a")
	if allowed {
		t.Error("request beyond rate+burst should be rejected")
	}
	if remaining != 0 {
		t.Errorf("expected 0 remaining, got %d", remaining)
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 2, Window: time.Minute, Burst: 1})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		rl.Allow("client-a")
	}
	if allowed, _, _ := rl.Allow("client-a"); allowed {
		t.Error("client-a should be exhausted")
	}
	if allowed, _, _ := rl.Allow("client-b"); !allowed {
		t.Error("client-b should have its own budget")
	}
}

func TestRateLimiter_RefillAfterWindow(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 2, Window: 50 * time.Millisecond, Burst: 1})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		rl.Allow("client-a")
	}
	if allowed, _, _ := rl.Allow("client-a"); allowed {
		t.Fatal("budget should be exhausted before refill")
	}

	time.Sleep(60 * time.Millisecond)

	if allowed, _, _ := rl.Allow("client-a"); !allowed {
		t.Error("budget should refill after the window elapses")
	}
}

func TestRateLimiter_Presets(t *testing.T) {
	t.Parallel()

	api := NewAPILimiter()
	defer api.Stop()
	if api.rate != 100 || api.window != time.Minute || api.burst != 20 {
		t.Errorf("api limiter budget = (%d, %v, %d)", api.rate, api.window, api.burst)
	}

	auth := NewAuthLimiter()
	defer auth.Stop()
	if auth.rate != 20 || auth.window != 15*time.Minute || auth.burst != 5 {
		t.Errorf("auth limiter budget = (%d, %v, %d)", auth.rate, auth.window, auth.burst)
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{})
	defer rl.Stop()

	if rl.rate != 100 {
		t.Errorf("expected default rate 100, got %d", rl.rate)
	}
	if rl.window != time.Minute {
		t.Errorf("expected default window 1m, got %v", rl.window)
	}
	if rl.burst != 20 {
		t.Errorf("expected default burst 20, got %d", rl.burst)
	}
}

// ===== Middleware =====

func TestRateLimit_SetsHeaders(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 10, Window: time.Minute, Burst: 5})
	defer rl.Stop()

	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Header().Get("X-RateLimit-Limit") != "10" {
		t.Errorf("X-RateLimit-Limit = %q", rr.Header().Get("X-RateLimit-Limit"))
	}
	if rr.Header().Get("X-RateLimit-Remaining") == "" {
		t.Error("expected X-RateLimit-Remaining header")
	}
	if rr.Header().Get("X-RateLimit-Reset") == "" {
		t.Error("expected X-RateLimit-Reset header")
	}
}

func TestRateLimit_RejectsWithRetryAfter(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Window: time.Minute, Burst: 1})
	defer rl.Stop()

	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", last.Code)
	}
	if last.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on 429")
	}
}

func TestRateLimit_PrefersUserIDOverAddress(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Window: time.Minute, Burst: 1})
	defer rl.Stop()

	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Exhaust the budget for one authenticated user.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		req = req.WithContext(contextWithUserID(req, "user:alice"))
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	req = req.WithContext(contextWithUserID(req, "user:alice"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected user:alice to be limited, got %d", rr.Code)
	}

	// A different user from the same address still has budget.
	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	req = req.WithContext(contextWithUserID(req, "user:bob"))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("expected user:bob to pass, got %d", rr.Code)
	}
}

func TestRateLimit_HostSharesBucketAcrossPorts(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Window: time.Minute, Burst: 1})
	defer rl.Stop()

	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Same host on new ephemeral ports spends one shared budget.
	for _, addr := range []string{"192.0.2.1:40001", "192.0.2.1:40002"} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", addr, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.0.2.1:40003"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("expected the third connection from the same host to be limited, got %d", rr.Code)
	}

	// A different host is untouched.
	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.0.2.2:40001"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("expected a different host to pass, got %d", rr.Code)
	}
}

func contextWithUserID(r *http.Request, userID string) context.Context {
	return context.WithValue(r.Context(), UserIDKey, userID)
}
