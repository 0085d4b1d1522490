package middlewares

import (
	"time"

	. "userapp/pkg/config"
	ct "userapp/pkg/context"
	"userapp/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func LoggingMiddleware(logger *AppLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		if raw != "" {
			path = path + "?" + raw
		}

		level := zapcore.InfoLevel
		if c.Writer.Status() >= 500 {
			level = zapcore.ErrorLevel
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("request_id", ct.GetCurrent(c.Request.Context()).RequestID),
			zap.String("trace_id", tracing.GetTraceID(c.Request.Context())),
		}

		if level == zapcore.ErrorLevel {
			logger.ErrorWithTrace(c.Request.Context(), "HTTP Request", fields...)
		} else {
			logger.InfoWithTrace(c.Request.Context(), "HTTP Request", fields...)
		}
	}
}
