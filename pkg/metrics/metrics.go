package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sleepr", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sleepr", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sleepr", Name: "http_requests_total", Help: "Total number of HTTP requests processed."},
		[]string{"method", "path", "status"},
	)
	// RepositoryOperations counts document repository calls; result is ok, not_found or error.
	RepositoryOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sleepr", Name: "repository_operations_total", Help: "Number of document repository operations by collection, operation and result."},
		[]string{"collection", "operation", "result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(RepositoryOperations)
}
