package middleware

import (
	"strconv"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency. Unmatched routes, which
// include every /:username profile page, are grouped under one label to
// keep cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		metrics.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	}
}
