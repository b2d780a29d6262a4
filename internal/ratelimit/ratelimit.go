package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter enforces per-client sliding minute and hour windows
type RateLimiter struct {
	requestsPerMinute int
	requestsPerHour   int
	enabled           bool
	now               func() time.Time

	mu        sync.Mutex
	clients   map[string]*window
	lastSweep time.Time
}

type window struct {
	minute []time.Time
	hour   []time.Time
}

// NewRateLimiter creates a new rate limiter with the given limits. A zero
// limit disables that window.
func NewRateLimiter(requestsPerMinute, requestsPerHour int, enabled bool) *RateLimiter {
	return &RateLimiter{
		requestsPerMinute: requestsPerMinute,
		requestsPerHour:   requestsPerHour,
		enabled:           enabled,
		now:               time.Now,
		clients:           make(map[string]*window),
	}
}

// SetClock replaces time.Now; tests use it to move time forward.
func (rl *RateLimiter) SetClock(now func() time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.now = now
}

// AllowRequest checks if a request from client is allowed based on rate limits
// Returns true if allowed, false if rate limit exceeded
func (rl *RateLimiter) AllowRequest(client string) bool {
	if !rl.enabled {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)
	w := rl.window(client)
	w.cleanup(now)

	if rl.requestsPerMinute > 0 && len(w.minute) >= rl.requestsPerMinute {
		return false
	}
	if rl.requestsPerHour > 0 && len(w.hour) >= rl.requestsPerHour {
		return false
	}

	w.minute = append(w.minute, now)
	w.hour = append(w.hour, now)
	return true
}

func (rl *RateLimiter) window(client string) *window {
	w, ok := rl.clients[client]
	if !ok {
		w = &window{}
		rl.clients[client] = w
	}
	return w
}

// sweep drops clients with no requests left in either window. It runs at
// most once a minute.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < time.Minute {
		return
	}
	rl.lastSweep = now
	for client, w := range rl.clients {
		w.cleanup(now)
		if w.idle() {
			delete(rl.clients, client)
		}
	}
}

func (w *window) idle() bool {
	return len(w.minute) == 0 && len(w.hour) == 0
}

// cleanup removes expired entries from the time windows
func (w *window) cleanup(now time.Time) {
	w.minute = filterTimes(w.minute, now.Add(-time.Minute))
	w.hour = filterTimes(w.hour, now.Add(-time.Hour))
}

// filterTimes keeps only times after the cutoff
func filterTimes(times []time.Time, cutoff time.Time) []time.Time {
	result := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			result = append(result, t)
		}
	}
	return result
}

// GetStats returns current rate limiter statistics for client
func (rl *RateLimiter) GetStats(client string) Stats {
	if !rl.enabled {
		return Stats{Enabled: false}
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	var minute, hour int
	if w, ok := rl.clients[client]; ok {
		w.cleanup(rl.now())
		if w.idle() {
			delete(rl.clients, client)
		}
		minute, hour = len(w.minute), len(w.hour)
	}

	return Stats{
		Enabled:             true,
		RequestsLastMinute:  minute,
		RequestsLastHour:    hour,
		LimitPerMinute:      rl.requestsPerMinute,
		LimitPerHour:        rl.requestsPerHour,
		RemainingThisMinute: max(0, rl.requestsPerMinute-minute),
		RemainingThisHour:   max(0, rl.requestsPerHour-hour),
	}
}

// Stats contains rate limiter statistics
type Stats struct {
	Enabled             bool `json:"enabled"`
	RequestsLastMinute  int  `json:"requests_last_minute"`
	RequestsLastHour    int  `json:"requests_last_hour"`
	LimitPerMinute      int  `json:"limit_per_minute"`
	LimitPerHour        int  `json:"limit_per_hour"`
	RemainingThisMinute int  `json:"remaining_this_minute"`
	RemainingThisHour   int  `json:"remaining_this_hour"`
}

// Reset clears all tracked requests
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.clients = make(map[string]*window)
}

// Middleware rejects over-limit clients with 429. Clients are keyed by IP.
// onReject, when set, is told the route of every rejected request.
func Middleware(rl *RateLimiter, onReject func(path string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.ClientIP()
		if !rl.AllowRequest(client) {
			if onReject != nil {
				onReject(c.FullPath())
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": "Too many requests. Please try again later.",
				"stats":   rl.GetStats(client),
			})
			return
		}
		c.Next()
	}
}
