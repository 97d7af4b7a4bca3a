package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"jsontodos/internal/core/telemetry"
	. "jsontodos/pkg/config"
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

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SetupGinMiddlewareWithConfig installs the production middleware chain.
// metrics may be nil when the metrics endpoint is disabled.
func SetupGinMiddlewareWithConfig(router *gin.Engine, metrics *telemetry.AppMetrics, logger *LokiLogger, config *AppConfig) {
	zapLogger := logger.Logger.Logger

	router.Use(RequestIDMiddleware())

	httpsEnforcer := NewHTTPSEnforcer(zapLogger, config.EnforceHTTPS)
	router.Use(httpsEnforcer.HTTPSMiddleware())

	router.Use(otelgin.Middleware(config.Telemetry.ServiceName))

	router.Use(LoggingMiddleware(logger))

	if config.RateLimitEnabled {
		rateLimiter := NewRateLimiter(zapLogger, metrics, config.RateLimitConfigs)
		router.Use(rateLimiter.RateLimitMiddleware())
	}

	if metrics != nil {
		router.Use(MetricsMiddleware(metrics))
	}
}
