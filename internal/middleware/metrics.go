package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-catalog/backend/internal/metrics"
)

// Metrics records request count and latency, labelled by route template
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
