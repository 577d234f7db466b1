package httputil

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiter tracks a per-client token bucket and its last use, so idle
// entries can be evicted.
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LoginRateLimiter throttles login attempts per client IP. Login is the only
// unauthenticated mutating endpoint, so it gets its own bucket rather than a
// general API limit.
type LoginRateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*clientLimiter

	stopCh chan struct{}
}

// NewLoginRateLimiter creates a limiter allowing perMinute attempts with the
// given burst, and starts a background cleanup of idle entries.
func NewLoginRateLimiter(perMinute, burst int) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop terminates the cleanup goroutine.
func (rl *LoginRateLimiter) Stop() {
	close(rl.stopCh)
}

// Middleware rejects requests over the limit with 429.
func (rl *LoginRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddr(r)

		if !rl.allow(client) {
			slog.Warn("login rate limit exceeded", "client", client)
			Error(w, http.StatusTooManyRequests, "too many login attempts, try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *LoginRateLimiter) allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.limiters[client]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[client] = entry
	}
	entry.lastAccess = time.Now()

	return entry.limiter.Allow()
}

func (rl *LoginRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-15 * time.Minute)
			for client, entry := range rl.limiters {
				if entry.lastAccess.Before(cutoff) {
					delete(rl.limiters, client)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// clientAddr extracts the client IP, relying on chi's RealIP middleware to
// have rewritten RemoteAddr when behind a proxy.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
