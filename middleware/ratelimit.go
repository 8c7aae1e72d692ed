package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/reposekdz/eastgate-sub004/utils"
)

// RateLimit is a fixed-window per-client limiter for booking writes,
// backed by Redis so it holds across replicas. With a nil client the
// limiter is disabled and requests pass straight through; Redis errors
// also fail open rather than blocking bookings.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	if rdb == nil || limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("ratelimit: redis error for %s: %v", key, err)
			c.Next()
			return
		}
		if count == 1 {
			_ = rdb.Expire(ctx, key, window).Err()
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			retry := int(window / time.Second)
			c.Header("Retry-After", strconv.Itoa(retry))
			utils.JSONError(c, http.StatusTooManyRequests, "error.tooManyRequests", "rate limit exceeded")
			c.Abort()
			return
		}
		c.Next()
	}
}
