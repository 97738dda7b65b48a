package middleware

import (
	"MindGarden/internal/pkg/response"
	"MindGarden/internal/service"
	"context"
	log "log/slog"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RateCounter counts hits in a fixed window.
type RateCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateLimitMiddleware allows limit requests per user per window on one route.
// It must run after AuthMiddleware. Counter failures let the request through.
func RateLimitMiddleware(counter RateCounter, route string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		userID := c.GetUint64(UserIDKey)
		key := route + ":" + strconv.FormatUint(userID, 10)

		count, ttl, err := counter.Hit(c.Request.Context(), key, window)
		if err != nil {
			log.WarnContext(c.Request.Context(), "rate limit counter error", "key", key, "err", err)
			c.Next()
			return
		}

		if count > int64(limit) {
			if ttl <= 0 {
				ttl = window
			}
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(ttl.Seconds()))))
			response.Fail(c, response.TooManyRequests, service.ErrTooManyRequests.Error())
			c.Abort()
			return
		}

		c.Next()
	}
}
