package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type rateWindow struct {
	start time.Time
	count int
}

// InMemoryRateLimiter caps requests per client IP over a fixed window. Counts
// reset when the window elapses; stale entries are reaped periodically.
type InMemoryRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateWindow
	limit   int
	window  time.Duration
}

func NewInMemoryRateLimiter(limit int, window time.Duration) *InMemoryRateLimiter {
	l := &InMemoryRateLimiter{
		clients: make(map[string]*rateWindow),
		limit:   limit,
		window:  window,
	}
	go l.reap()
	return l
}

func (l *InMemoryRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	w := l.clients[key]
	if w == nil || now.Sub(w.start) >= l.window {
		l.clients[key] = &rateWindow{start: now, count: 1}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

func (l *InMemoryRateLimiter) reap() {
	for range time.Tick(time.Minute) {
		l.mu.Lock()
		now := time.Now()
		for key, w := range l.clients {
			if now.Sub(w.start) >= l.window {
				delete(l.clients, key)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit rejects requests from clients that exceeded their window.
func RateLimit(limiter *InMemoryRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
