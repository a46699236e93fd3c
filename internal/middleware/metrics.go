package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Token operation metrics
	tokenOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playground_operations_total",
			Help: "Total number of token operations",
		},
		[]string{"operation", "outcome"}, // operation: generate/verify/decode/lint, outcome: ok/valid/SignatureMismatch/MalformedToken/...
	)

	tokenOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playground_operation_duration_seconds",
			Help:    "Token operation duration in seconds",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		},
		[]string{"operation"},
	)

	rateLimitHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
	)
)

// Metrics creates a Prometheus metrics middleware
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Process request
		c.Next()

		// Use the route template so unknown paths do not create new series
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		// Record metrics
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}

// RecordTokenOperation records a token operation metric
func RecordTokenOperation(operation, outcome string, duration time.Duration) {
	tokenOperationsTotal.WithLabelValues(operation, outcome).Inc()
	tokenOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordRateLimitHit records a rate limit hit
func RecordRateLimitHit() {
	rateLimitHitsTotal.Inc()
}
