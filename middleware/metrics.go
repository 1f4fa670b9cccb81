package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/earnbaseio/earnbase-common/metrics"
)

// Metrics records request count, latency, and in-flight gauge on the shared
// metrics registry. The endpoint label uses the route template, falling back
// to the raw path for unmatched routes.
func Metrics(registry *metrics.Registry) gin.HandlerFunc {
	if registry == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		method := c.Request.Method

		registry.RequestInProgress.WithLabelValues(method, endpoint).Inc()
		start := time.Now()

		c.Next()

		registry.RequestInProgress.WithLabelValues(method, endpoint).Dec()
		registry.RequestLatency.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
		registry.RequestCount.WithLabelValues(method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
