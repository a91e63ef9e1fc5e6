package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/boardflow/backend/internal/auth"
	"github.com/boardflow/backend/pkg/response"
)

const (
	// ContextUserID is the key for user ID in gin context.
	ContextUserID = "user_id"
	// ContextUserRole is the key for user role in gin context.
	ContextUserRole = "user_role"
	// ContextUserEmail is the key for user email in gin context.
	ContextUserEmail = "user_email"
	// ContextTab is the key for the dashboard tab the session signed in to.
	ContextTab = "user_tab"
)

// JWT returns a middleware that validates JWT and sets user claims in context.
// Browsers cannot set headers on websocket upgrades, so a token query parameter is
// accepted when the header is absent.
func JWT(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearer(c)
		if !ok {
			c.Abort()
			return
		}
		claims, err := jwtService.Validate(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextTab, claims.Tab)
		c.Next()
	}
}

func bearer(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if q := c.Query("token"); q != "" {
			return q, true
		}
		response.Unauthorized(c, "missing authorization header")
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Unauthorized(c, "invalid authorization header")
		return "", false
	}
	return parts[1], true
}

// UserID returns the authenticated user id, or "" outside JWT-protected routes.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
