package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// Proxy headers consulted before the socket address, in order.
const (
	ForwardedForHeader = "X-Forwarded-For"
	RealIPHeader       = "X-Real-IP"
)

// getClientIP keys rate limits and request logs. The left-most
// X-Forwarded-For hop is the originating client.
func getClientIP(c *gin.Context) string {
	first, _, _ := strings.Cut(c.GetHeader(ForwardedForHeader), ",")
	if ip := strings.TrimSpace(first); ip != "" {
		return ip
	}
	if ip := strings.TrimSpace(c.GetHeader(RealIPHeader)); ip != "" {
		return ip
	}

	addr := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
