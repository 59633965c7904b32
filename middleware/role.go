package middleware

import (
	"net/http"

	"stayhub/models"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group to the listed account roles. Admins pass
// every gate.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxUserRole)
		if role == models.RoleAdmin {
			c.Next()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

// RequireAdmin gates a route group to admins only.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole()
}
