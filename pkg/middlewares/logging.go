package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	. "jsontodos/pkg"
	. "jsontodos/pkg/config"
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

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", GetClientIP(c)),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("request_id", c.GetString(RequestIDKey)),
		}

		if c.Writer.Status() >= 500 {
			logger.ErrorWithTrace(c.Request.Context(), "HTTP Request", fields...)
			return
		}

		logger.InfoWithTrace(c.Request.Context(), "HTTP Request", fields...)
	}
}
