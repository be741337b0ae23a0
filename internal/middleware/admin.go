package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RoleLookup resolves a principal's stored role by email.
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// RequireAdmin rejects the request unless the verified principal's stored role
// is "admin". It always aborts on failure; there is no fall-through path.
// Must be mounted after AuthMiddleware.
func RequireAdmin(roles RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := EmailFromContext(c.Request.Context())
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access!"})
			return
		}

		role, err := roles.RoleByEmail(c.Request.Context(), email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access!"})
			return
		}
		if role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access!"})
			return
		}
		c.Next()
	}
}
