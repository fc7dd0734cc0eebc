package middleware

import (
  "fmt"
  "net/http"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/redis/go-redis/v9"

  "github.com/excollo/aipersona-backend/internal/logger"
)

// RateLimiter is a fixed-window per-IP limiter backed by redis so the count
// survives restarts and is shared across replicas. With no redis client it
// degrades to a no-op rather than locking everyone out.
type RateLimiter struct {
  log    *logger.Logger
  client *redis.Client
  window time.Duration
}

func NewRateLimiter(log *logger.Logger, client *redis.Client) *RateLimiter {
  return &RateLimiter{
    log:    log.With("middleware", "RateLimiter"),
    client: client,
    window: time.Minute,
  }
}

func (rl *RateLimiter) Limit(scope string, maxRequests int) gin.HandlerFunc {
  return func(c *gin.Context) {
    if rl.client == nil {
      c.Next()
      return
    }
    ctx := c.Request.Context()
    key := fmt.Sprintf("ratelimit:%s:%s", scope, c.ClientIP())
    count, err := rl.client.Incr(ctx, key).Result()
    if err != nil {
      rl.log.Warn("rate limit check failed, letting request through", "error", err)
      c.Next()
      return
    }
    if count == 1 {
      if err := rl.client.Expire(ctx, key, rl.window).Err(); err != nil {
        rl.log.Warn("failed to set rate limit window expiry", "error", err)
      }
    }
    if count > int64(maxRequests) {
      c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later."})
      return
    }
    c.Next()
  }
}
