package middleware

import (
	"time"

	"garden_feed/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware 记录 HTTP 请求指标
func MetricsMiddleware() gin.HandlerFunc {
	collector := metrics.GetGlobalCollector()
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// 使用路由模板作为 endpoint 标签，避免按具体ID产生基数爆炸
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		collector.RecordRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}
