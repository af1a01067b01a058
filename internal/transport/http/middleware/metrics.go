package middleware

import (
	"strconv"
	"time"

	"github.com/ErlanBelekov/dashboard-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method
		duration := time.Since(start).Seconds()

		metrics.HTTPRequestDuration.WithLabelValues(method, routePath(c), status).Observe(duration)
		metrics.HTTPRequestsTotal.WithLabelValues(method, routePath(c), status).Inc()
	}
}

// routePath keeps label cardinality bounded for unmatched routes.
func routePath(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unknown"
}
