package middlewares

import (
	"time"

	ct "goalsapp/pkg/context"
	. "goalsapp/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func LoggingMiddleware(logger *LokiLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		if raw != "" {
			path = path + "?" + raw
		}

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("request_id", ct.RequestID(c.Request.Context())),
		}

		ctx := c.Request.Context()

		switch {
		case status >= 500:
			logger.ErrorWithTrace(ctx, "HTTP Request", fields...)
		case status >= 400:
			logger.WarnWithTrace(ctx, "HTTP Request", fields...)
		default:
			logger.InfoWithTrace(ctx, "HTTP Request", fields...)
		}
	}
}
