// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/dto"
)

const (
	defaultMaxAttempts    = 30
	defaultWindowDuration = time.Minute
)

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// RateLimiter provides rate limiting keyed by the authenticated user, or by client IP
// for unauthenticated routes such as the scheduler trigger.
type RateLimiter struct {
	mu             sync.Mutex
	entries        map[string]*rateLimitEntry
	maxAttempts    int
	windowDuration time.Duration
}

// NewRateLimiter creates a new rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		entries:        make(map[string]*rateLimitEntry),
		maxAttempts:    defaultMaxAttempts,
		windowDuration: defaultWindowDuration,
	}
}

// NewRateLimiterWithConfig creates a new rate limiter with custom settings.
func NewRateLimiterWithConfig(maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		entries:        make(map[string]*rateLimitEntry),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(rateLimitKey(c)) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// rateLimitKey prefers the user id set by AuthMiddleware over the client IP.
func rateLimitKey(c *gin.Context) string {
	if userID, ok := GetUserIDFromContext(c); ok {
		return "user:" + userID.String()
	}
	if ip := c.ClientIP(); ip != "" {
		return "ip:" + ip
	}
	return "ip:" + c.Request.RemoteAddr
}

// allow counts a request against key and reports whether it is within the window's budget.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	entry, exists := rl.entries[key]
	if !exists || now.After(entry.resetTime) {
		rl.entries[key] = &rateLimitEntry{attempts: 1, resetTime: now.Add(rl.windowDuration)}
		return true
	}

	if entry.attempts >= rl.maxAttempts {
		return false
	}
	entry.attempts++
	return true
}

// Cleanup removes expired entries.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, entry := range rl.entries {
		if now.After(entry.resetTime) {
			delete(rl.entries, key)
		}
	}
}

// StartCleanup removes expired entries every interval until ctx is cancelled.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup()
		}
	}
}
