package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	h "eventexplorer/internal/delivery/http/helpers"
)

// RateLimiter is a fixed-window per-client-address request counter. A request
// over the limit gets 429 without reaching the handler.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*windowCount
}

type windowCount struct {
	windowStart time.Time
	count       int
}

// NewRateLimiter allows limit requests per window per client address.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: make(map[string]*windowCount),
	}
}

// Wrap applies the limit to next. Separate limiters must be used for routes
// with different budgets.
func (l *RateLimiter) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientAddr(r)) {
			h.WriteJSONError(w, http.StatusTooManyRequests, h.ErrCodeTooManyRequests, "too many requests, slow down")
			return
		}
		next(w, r)
	}
}

func (l *RateLimiter) allow(addr string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[addr]
	if !ok || now.Sub(b.windowStart) >= l.window {
		l.buckets[addr] = &windowCount{windowStart: now, count: 1}
		l.sweepLocked(now)
		return true
	}
	if b.count >= l.limit {
		return false
	}
	b.count++
	return true
}

// sweepLocked drops expired buckets so the map does not grow without bound.
// Called with the mutex held, only when a new window opens.
func (l *RateLimiter) sweepLocked(now time.Time) {
	for addr, b := range l.buckets {
		if now.Sub(b.windowStart) >= l.window {
			delete(l.buckets, addr)
		}
	}
}

// clientAddr returns the client address for limiting: the first entry of
// X-Forwarded-For when present, otherwise the connection's host.
func clientAddr(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
