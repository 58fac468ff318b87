package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sleepr/sleepr/backend/go-services/pkg/metrics"
)

// Metrics counts handled requests by method, route pattern and status.
// Scrapes of /metrics are not counted.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		c.Next()

		// route pattern (/reservations/:id) keeps label cardinality bounded
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
