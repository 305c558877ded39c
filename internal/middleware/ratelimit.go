package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	apperrors "github.com/khaohom/savings/internal/errors"
)

// evictAfter is how long an idle client entry survives before cleanup.
const evictAfter = 3 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter throttles requests per client IP with a token bucket sized
// to a per-minute ceiling. Sync and read routes each get their own limiter
// so batch writes stay on a much lower ceiling than reads.
type ClientLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	message string
}

// NewClientLimiter creates a limiter allowing perMinute requests per client.
func NewClientLimiter(perMinute int, message string) *ClientLimiter {
	return &ClientLimiter{
		clients: make(map[string]*client),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
		message: message,
	}
}

// Allow reports whether the client may proceed and consumes a token if so.
func (l *ClientLimiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[clientIP]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[clientIP] = c
	}
	c.lastSeen = time.Now()

	if len(l.clients) > 1000 {
		l.evictStale()
	}

	return c.limiter.Allow()
}

// evictStale removes idle entries. Caller holds the lock.
func (l *ClientLimiter) evictStale() {
	cutoff := time.Now().Add(-evictAfter)
	for ip, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
}

// Wrap applies the limiter in front of the next handler, answering 429 with
// a JSON error and no side effects once the ceiling is hit.
func (l *ClientLimiter) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(ClientIP(r)) {
			err := &apperrors.ErrRateLimited{Message: l.message}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP extracts the caller's address, preferring the first
// X-Forwarded-For hop when the server sits behind a proxy.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
