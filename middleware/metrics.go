package middleware

import (
	"context"
	"time"

	awspkg "github.com/KingGimer44/VideoJuego/pkg/aws"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request count, latency and error ranges in CloudWatch.
func MetricsMiddleware(metricsClient *awspkg.MetricsClient, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !metricsClient.IsEnabled() {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)
		statusCode := c.Writer.Status()

		// Route templates keep the Path dimension bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		dimensions := map[string]string{
			"Service": serviceName,
			"Method":  c.Request.Method,
			"Path":    path,
			"Status":  statusCodeToRange(statusCode),
		}

		go recordRequest(metricsClient, statusCode, duration, dimensions)
	}
}

// recordRequest sends the request counter and latency, plus the error
// counters that match statusCode.
func recordRequest(metricsClient *awspkg.MetricsClient, statusCode int, duration time.Duration, dimensions map[string]string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = metricsClient.RecordLatency(ctx, awspkg.MetricHTTPLatency, duration, dimensions)
	for _, name := range requestMetrics(statusCode) {
		_ = metricsClient.RecordCount(ctx, name, dimensions)
	}
}

// requestMetrics lists the counters one response increments.
func requestMetrics(statusCode int) []string {
	switch {
	case statusCode >= 500:
		return []string{awspkg.MetricHTTPRequests, awspkg.MetricHTTPErrors, awspkg.MetricHTTP5xx}
	case statusCode >= 400:
		return []string{awspkg.MetricHTTPRequests, awspkg.MetricHTTPErrors, awspkg.MetricHTTP4xx}
	default:
		return []string{awspkg.MetricHTTPRequests}
	}
}

// statusCodeToRange converts status code to a range string (2xx, 3xx, 4xx, 5xx)
func statusCodeToRange(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
