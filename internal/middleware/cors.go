package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Origins is a parsed CORS allow list. An empty list or "*" allows every origin.
type Origins map[string]bool

// ParseOrigins builds an allow list from origins, trimming blanks.
func ParseOrigins(origins []string) Origins {
	m := make(Origins)
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			m[o] = true
		}
	}
	return m
}

// Any reports whether every origin is allowed.
func (o Origins) Any() bool {
	return len(o) == 0 || o["*"]
}

// Allowed reports whether origin may call the API or open a websocket.
func (o Origins) Allowed(origin string) bool {
	return o.Any() || o[origin]
}

// CORS returns a middleware that sets CORS headers for cross-origin requests.
func CORS(origins Origins) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowOrigin := ""
		if origins.Any() {
			allowOrigin = "*"
		} else if origin != "" && origins[origin] {
			allowOrigin = origin
			c.Header("Vary", "Origin")
		}
		if allowOrigin != "" {
			c.Header("Access-Control-Allow-Origin", allowOrigin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Header("Access-Control-Max-Age", "86400")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
