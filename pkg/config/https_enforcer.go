package config

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HTTPSEnforcer redirects plain HTTP requests to HTTPS. Requests already on
// TLS, forwarded as https, or addressed to a loopback host pass through.
type HTTPSEnforcer struct {
	enabled bool
	logger  *zap.Logger
}

func NewHTTPSEnforcer(logger *zap.Logger, enabled bool) *HTTPSEnforcer {
	return &HTTPSEnforcer{
		enabled: enabled,
		logger:  logger,
	}
}

func (he *HTTPSEnforcer) HTTPSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !he.enabled || isSecure(c.Request) || isLoopback(c.Request.Host) {
			c.Next()
			return
		}

		target := "https://" + c.Request.Host + c.Request.URL.RequestURI()

		// GET and HEAD may switch method on redirect; writes must keep theirs.
		status := http.StatusPermanentRedirect
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			status = http.StatusMovedPermanently
		}

		he.logger.Info("Redirecting to HTTPS",
			zap.String("method", c.Request.Method),
			zap.String("https_url", target),
			zap.Int("status", status))

		c.Redirect(status, target)
		c.Abort()
	}
}

func isSecure(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}

func isLoopback(hostport string) bool {
	host, _, err := net.SplitHostPort(hostport)
	if err != nil {
		host = hostport
	}

	if host == "localhost" {
		return true
	}

	ip := net.ParseIP(host)

	return ip != nil && ip.IsLoopback()
}
