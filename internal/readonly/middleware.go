// Package readonly rejects write requests while the service runs in read-only mode.
package readonly

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const message = "This action is disabled in read-only mode"

// ContextKey stores the read-only flag in the gin context.
const ContextKey = "read_only"

// Middleware blocks write operations when enabled. GET, HEAD and OPTIONS
// requests always pass.
type Middleware struct {
	enabled bool
}

// NewMiddleware creates a read-only middleware.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

// IsEnabled returns whether read-only mode is active.
func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKey, m.enabled)

		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     message,
			"read_only": true,
		})
	}
}
