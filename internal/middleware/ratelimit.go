package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/forgo/voyage/api/internal/model"
)

// RateLimiter tracks a token budget per client. Each client may hold up to
// rate+burst tokens; spent tokens flow back at rate per window.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	rate   int
	window time.Duration
	burst  int

	done chan struct{}
}

// visitor is one client's budget. lastSeen doubles as the refill anchor: it
// only advances when tokens are actually restored.
type visitor struct {
	tokens   int
	lastSeen time.Time
}

// RateLimitConfig holds rate limiter settings.
type RateLimitConfig struct {
	Rate   int           // tokens restored per window (default 100)
	Window time.Duration // refill period (default 1 minute)
	Burst  int           // headroom above Rate for short spikes (default 20)
}

// NewAPILimiter returns the limiter mounted in front of the whole surface:
// 100 requests per minute with a burst of 20.
func NewAPILimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{Rate: 100, Window: time.Minute, Burst: 20})
}

// NewAuthLimiter returns the stricter limiter wrapped around the credential
// endpoints: 20 attempts per 15 minutes with a burst of 5, so password
// guessing exhausts its budget long before the API-wide limit notices.
func NewAuthLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{Rate: 20, Window: 15 * time.Minute, Burst: 5})
}

// NewRateLimiter creates a rate limiter with the given budget. Zero config
// fields fall back to the API-wide defaults.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Rate <= 0 {
		cfg.Rate = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 20
	}

	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     cfg.Rate,
		window:   cfg.Window,
		burst:    cfg.Burst,
		done:     make(chan struct{}),
	}

	go rl.sweep()

	return rl
}

// Stop terminates the background sweep.
func (rl *RateLimiter) Stop() {
	close(rl.done)
}

func (rl *RateLimiter) capacity() int {
	return rl.rate + rl.burst
}

// sweep drops budgets idle for two full windows. A dropped client starts
// over with a fresh budget on its next request, which is what two idle
// windows of refill would have given it anyway.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(2 * rl.window)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			rl.mu.Lock()
			for key, v := range rl.visitors {
				if now.Sub(v.lastSeen) > 2*rl.window {
					delete(rl.visitors, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.done:
			return
		}
	}
}

// Allow spends one token for key. It reports whether the request may
// proceed, the tokens left, and when the budget next refills.
func (rl *RateLimiter) Allow(key string) (allowed bool, remaining int, reset time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{tokens: rl.capacity(), lastSeen: now}
		rl.visitors[key] = v
	} else {
		v.refill(now, rl.rate, rl.capacity(), rl.window)
	}

	reset = v.lastSeen.Add(rl.window)
	if v.tokens == 0 {
		return false, 0, reset
	}

	v.tokens--
	return true, v.tokens, reset
}

// refill restores tokens in proportion to the idle time since lastSeen,
// capped at capacity. Idle stretches too short to earn a whole token leave
// the anchor untouched so they can accumulate.
func (v *visitor) refill(now time.Time, rate, capacity int, window time.Duration) {
	idle := now.Sub(v.lastSeen)
	if idle <= 0 {
		return
	}

	restored := int(idle * time.Duration(rate) / window)
	if restored == 0 {
		return
	}

	v.tokens += restored
	if v.tokens > capacity {
		v.tokens = capacity
	}
	v.lastSeen = now
}

// RateLimit returns a middleware that applies limiter per client and
// advertises the budget through X-RateLimit headers.
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, reset := limiter.Allow(clientKey(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			if !allowed {
				retryAfter := int(time.Until(reset).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey is the authenticated user id when present, otherwise the
// caller's host with the ephemeral port stripped so one host keeps one
// budget across connections.
func clientKey(r *http.Request) string {
	if id := GetUserID(r.Context()); id != "" {
		return id
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
