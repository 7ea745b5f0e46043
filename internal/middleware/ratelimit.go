package middleware

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// RateLimiter caps requests per client IP over a fixed window. Generation
// endpoints are the expensive surface, so the router applies it only there.
type RateLimiter struct {
	mu     sync.Mutex
	counts map[string]*windowCount
	limit  int
	window time.Duration
}

// windowCount tracks one client's requests inside its current window. The
// window restarts from the first request after it expires, not on a fixed
// clock boundary.
type windowCount struct {
	n       int
	started time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		counts: make(map[string]*windowCount),
		limit:  limit,
		window: window,
	}
	go rl.evictStale()
	return rl
}

// evictStale drops clients whose window has long expired so the map does not
// grow with every IP ever seen.
func (rl *RateLimiter) evictStale() {
	for range time.Tick(rl.window) {
		rl.mu.Lock()
		for ip, wc := range rl.counts {
			if time.Since(wc.started) > rl.window {
				delete(rl.counts, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// allow records one request from ip and reports whether it is within the
// limit for the current window.
func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	wc, ok := rl.counts[ip]
	if !ok || time.Since(wc.started) > rl.window {
		rl.counts[ip] = &windowCount{n: 1, started: time.Now()}
		return true
	}

	wc.n++
	return wc.n <= rl.limit
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(r.RemoteAddr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "Too many requests. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
