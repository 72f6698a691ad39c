package middleware

import (
	"net/http"

	"leavedesk/internal/authz"
	"leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route on the static role/permission matrix.
// The role must already be on the context from AuthMiddleware; a missing
// or unknown role is denied, never allowed through.
func RequirePermission(perm authz.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
			c.Abort()
			return
		}

		roleStr, _ := role.(string)
		if !authz.HasPermission(authz.Role(roleStr), perm) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to perform this action",
				gin.H{"required": string(perm)})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAnyPermission allows the request when the role holds at least one
// of the listed permissions.
func RequireAnyPermission(perms ...authz.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
			c.Abort()
			return
		}

		roleStr, _ := role.(string)
		if !authz.HasAnyPermission(authz.Role(roleStr), perms) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to perform this action", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
