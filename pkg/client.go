package pkg

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetClientIP identifies the caller for rate limiting and request logs. The
// first X-Forwarded-For hop wins, then X-Real-IP, then the socket address.
func GetClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")

		if ip := normalizeIP(first); ip != "" {
			return ip
		}
	}

	if ip := normalizeIP(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}

	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	return "unknown"
}

func normalizeIP(raw string) string {
	raw = strings.TrimSpace(raw)

	if host, _, err := net.SplitHostPort(raw); err == nil {
		raw = host
	}

	if ip := net.ParseIP(raw); ip != nil {
		return ip.String()
	}

	return ""
}
