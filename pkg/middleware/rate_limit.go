package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/sleepr/sleepr/backend/go-services/pkg/metrics"
)

// limitKey prefers the authenticated subject (NAT-friendly) and falls back to the client IP.
func limitKey(c *gin.Context) string {
	if sub := Subject(c); sub != "" {
		return "sub:" + sub
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

func rejectRateLimited(c *gin.Context, limiter, retryAfter string) {
	c.Header("Retry-After", retryAfter)
	metrics.RateLimitRejected.WithLabelValues(limiter).Inc()
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
}

// memoryLimiter keeps one token bucket per key for the lifetime of the middleware.
type memoryLimiter struct {
	limit rate.Limit
	burst int
	store sync.Map // map[string]*rate.Limiter
}

func (m *memoryLimiter) get(key string) *rate.Limiter {
	if v, ok := m.store.Load(key); ok {
		return v.(*rate.Limiter)
	}
	v, _ := m.store.LoadOrStore(key, rate.NewLimiter(m.limit, m.burst))
	return v.(*rate.Limiter)
}

// RateLimitMiddleware returns a Gin middleware enforcing an in-process token bucket per key.
// rps = allowed events per second, burst = maximum tokens in bucket.
// Every call builds an independent set of buckets.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	m := &memoryLimiter{limit: rate.Limit(rps), burst: burst}
	return func(c *gin.Context) {
		if !m.get(limitKey(c)).Allow() {
			rejectRateLimited(c, "memory", "1")
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
