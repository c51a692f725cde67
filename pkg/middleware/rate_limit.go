package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CounterStore is the slice of the redis API the limiter needs; satisfied
// by *redis.Client.
type CounterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

type RateLimiterConfig struct {
	RedisClient CounterStore
	Limit       int
	Window      time.Duration
	KeyPrefix   string
	Extractor   func(c *gin.Context) string
}

// NewRateLimiter is a fixed-window limiter keyed by client address.
// Redis here holds only throttling counters, never job state.
func NewRateLimiter(cfg RateLimiterConfig) gin.HandlerFunc {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rl:"
	}
	if cfg.Extractor == nil {
		cfg.Extractor = func(c *gin.Context) string {
			xff := c.Request.Header.Get("X-Forwarded-For")
			if xff != "" {
				parts := strings.Split(xff, ",")
				return strings.TrimSpace(parts[0])
			}
			return c.Request.RemoteAddr
		}
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := cfg.Extractor(c)
		if id == "" {
			id = "anonymous"
		}
		key := cfg.KeyPrefix + id

		count, err := cfg.RedisClient.Incr(ctx, key).Result()
		if err != nil {
			// limiter outage must not take uploads down with it
			c.Next()
			return
		}

		if count == 1 {
			cfg.RedisClient.Expire(ctx, key, cfg.Window)
		}

		if count > int64(cfg.Limit) {
			ttl, _ := cfg.RedisClient.TTL(ctx, key).Result()
			reset := int(ttl.Seconds())
			if reset < 0 {
				reset = 0
			}
			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.Limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", reset))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":             "rate limit exceeded",
				"rate_limit":        cfg.Limit,
				"rate_limit_window": cfg.Window.String(),
				"retry_after_sec":   reset,
			})
			return
		}

		remaining := cfg.Limit - int(count)
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		ttl, _ := cfg.RedisClient.TTL(ctx, key).Result()
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", int(ttl.Seconds())))

		c.Next()
	}
}
