package app

import (
	"log/slog"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"

	routes "email-intake/internal/routes"
)

// Headers sent with every response. The pages load nothing but their own
// stylesheet and only ever post back to /submit.
var responseHeaders = map[string]string{
	"X-Content-Type-Options":  "nosniff",
	"X-Frame-Options":         "DENY",
	"Referrer-Policy":         "no-referrer",
	"Content-Security-Policy": "default-src 'self'; form-action 'self'; frame-ancestors 'none'",
}

func securityHeaders(c *gin.Context) {
	h := c.Writer.Header()
	for k, v := range responseHeaders {
		h.Set(k, v)
	}

	// The submission log changes with every post, static assets do not.
	if !strings.HasPrefix(c.Request.URL.Path, "/static/") {
		h.Set("Cache-Control", "no-store")
	}
	c.Next()
}

// parseNetworks reads a comma separated CIDR list. Invalid entries are
// logged and left out.
func parseNetworks(list string) []netip.Prefix {
	var prefixes []netip.Prefix
	for entry := range strings.SplitSeq(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			slog.Warn("Ignoring invalid network in allow list", "network", entry, "error", err)
			continue
		}
		prefixes = append(prefixes, prefix.Masked())
	}
	return prefixes
}

// IPAccessControl rejects clients outside allowed. Loopback is let through
// unless gin runs in release mode.
func IPAccessControl(allowed []netip.Prefix) gin.HandlerFunc {
	allowLoopback := gin.Mode() != gin.ReleaseMode

	return func(c *gin.Context) {
		addr, err := netip.ParseAddr(c.ClientIP())
		if err == nil {
			addr = addr.Unmap()
			if allowLoopback && addr.IsLoopback() {
				c.Next()
				return
			}
			for _, prefix := range allowed {
				if prefix.Contains(addr) {
					c.Next()
					return
				}
			}
		}

		routes.AbortWithError(c, routes.ErrForbidden)
	}
}
