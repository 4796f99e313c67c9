package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status", "service"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "service"},
	)

	feedActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_actions_total",
			Help: "Total number of feed actions processed",
		},
		[]string{"action", "source"},
	)

	feedPagesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_pages_served_total",
			Help: "Total number of feed pages served",
		},
		[]string{"status"},
	)
)

func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			status,
			serviceName,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			serviceName,
		).Observe(duration)
	}
}

// RecordFeedAction учитывает обработанное действие (source: http или consumer)
func RecordFeedAction(action, source string) {
	feedActionsTotal.WithLabelValues(action, source).Inc()
}

// RecordFeedPage учитывает выдачу страницы ленты
func RecordFeedPage(status string) {
	feedPagesServed.WithLabelValues(status).Inc()
}
