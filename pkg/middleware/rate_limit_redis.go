package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/sleepr/sleepr/backend/go-services/pkg/logger"
	"github.com/sleepr/sleepr/backend/go-services/pkg/metrics"
)

type redisLimiter struct {
	client  *redis.Client
	seconds int
	allowed int64
	now     func() time.Time
}

// RedisRateLimitMiddleware provides a coarse fixed-window Redis-backed limiter shared by all replicas.
// Each window admits floor(rps*window)+burst requests per key.
// A nil client falls back to RateLimitMiddleware.
func RedisRateLimitMiddleware(client *redis.Client, rps float64, burst int, window time.Duration) gin.HandlerFunc {
	if client == nil {
		return RateLimitMiddleware(rps, burst)
	}
	return newRedisLimiter(client, rps, burst, window, time.Now).handle
}

func newRedisLimiter(client *redis.Client, rps float64, burst int, window time.Duration, now func() time.Time) *redisLimiter {
	seconds := int(window.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	return &redisLimiter{
		client:  client,
		seconds: seconds,
		allowed: int64(rps*float64(seconds)) + int64(burst),
		now:     now,
	}
}

func (l *redisLimiter) handle(c *gin.Context) {
	ctx := c.Request.Context()
	bucket := l.now().Unix() / int64(l.seconds)
	key := fmt.Sprintf("rl:%s:%d", limitKey(c), bucket)

	cnt, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		logger.Errorf("rate limit: redis INCR %s: %v", key, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Rate limit check failed"})
		return
	}
	if cnt == 1 {
		// one extra second so a late INCR never lands on an expired key
		_ = l.client.Expire(ctx, key, time.Duration(l.seconds+1)*time.Second).Err()
	}
	if cnt > l.allowed {
		rejectRateLimited(c, "redis", strconv.Itoa(l.seconds))
		return
	}
	metrics.RateLimitAllowed.WithLabelValues("redis").Inc()
	c.Next()
}
