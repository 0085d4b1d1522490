package middlewares

import (
	"strconv"
	"time"

	"userapp/internal/core/telemetry"
	. "userapp/pkg/config"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func MetricsMiddleware(metrics *telemetry.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementActiveConnections(c.Request.Context())
		defer metrics.DecrementActiveConnections(c.Request.Context())

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.RecordRequest(
			c.Request.Context(),
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}

// SetupGinMiddlewareWithConfig installs, in order, HTTPS enforcement,
// tracing, request logging, rate limiting and request metrics.
func SetupGinMiddlewareWithConfig(router *gin.Engine, metrics *telemetry.AppMetrics, logger *AppLogger, config *AppConfig) {
	httpsEnforcer := NewHTTPSEnforcer(logger.Zap(), config.EnforceHTTPS)
	router.Use(httpsEnforcer.HTTPSMiddleware())

	router.Use(otelgin.Middleware(config.ServiceName))

	router.Use(LoggingMiddleware(logger))

	if config.RateLimitEnabled {
		rateLimiter := NewRateLimiter(logger.Zap(), metrics, config.RateLimitConfigs)
		router.Use(rateLimiter.RateLimitMiddleware())
	}

	if metrics != nil {
		router.Use(MetricsMiddleware(metrics))
	}
}
