package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// SubmitRateLimit limits prediction submits per user (not per IP) using
// Redis. Requires JWT middleware to run before this.
func SubmitRateLimit(maxSubmits int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		userID, ok := userIDVal.(int64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
			return
		}

		key := "submit_rl:" + strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(int64(window.Seconds()), 10)
		ctx := context.Background()

		val, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			c.Header("X-SubmitRateLimit-Error", "redis-error")
			c.Next()
			return
		}

		if val == 1 {
			redisClient.Expire(ctx, key, window)
		}

		c.Header("X-SubmitRateLimit-Limit", strconv.Itoa(maxSubmits))
		remaining := int64(maxSubmits) - val
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-SubmitRateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if val > int64(maxSubmits) {
			RLBlocked.WithLabelValues("submit:" + c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "submit rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues("submit:" + c.FullPath()).Inc()
		c.Next()
	}
}
