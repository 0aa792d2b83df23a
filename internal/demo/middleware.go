// Package demo serves a shared demo catalog read-only.
//
// In demo mode every request that would change the catalog, loans, sales, users or settings
// is refused. Per-visitor client state (the active session, the wishlist and the notification
// feed) stays writable so the demo can still be explored.
package demo

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKeyDemoMode is set on every request so handlers can tell a demo deployment apart.
const ContextKeyDemoMode = "demo_mode"

// BlockedMessage is the error returned for refused writes.
const BlockedMessage = "This action is disabled in demo mode"

var allowedPrefixes = []string{
	"/api/session",
	"/api/wishlist",
	"/api/notifications",
}

// Middleware blocks write operations in demo mode.
type Middleware struct {
	enabled bool
}

func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that refuses writes outside the allowlist with 403.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyDemoMode, m.enabled)
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if isAllowedPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     BlockedMessage,
			"demo_mode": true,
		})
	}
}

func isAllowedPath(path string) bool {
	for _, prefix := range allowedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
