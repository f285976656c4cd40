// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/finflow/backend/internal/domain/error"
	"github.com/finflow/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindow is the throttling window.
	defaultWindow = 1 * time.Minute
)

// RateLimiter throttles login attempts per client IP using Redis INCR with a
// window-long EXPIRE. A nil client disables throttling entirely.
type RateLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewRateLimiter creates a new rate limiter with default settings.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{
		client:      client,
		maxAttempts: defaultMaxAttempts,
		window:      defaultWindow,
	}
}

// NewRateLimiterWithConfig creates a new rate limiter with custom settings.
func NewRateLimiterWithConfig(client *redis.Client, maxAttempts int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Middleware returns a Gin middleware handler that enforces the throttle.
// Redis failures fail open: a broken throttle must not take logins down.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.client == nil {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}
		key := fmt.Sprintf("login_attempts:%s", clientIP)

		attempts, err := rl.client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			c.Next()
			return
		}
		if attempts == 1 {
			rl.client.Expire(c.Request.Context(), key, rl.window)
		}

		if attempts > int64(rl.maxAttempts) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many login attempts. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
