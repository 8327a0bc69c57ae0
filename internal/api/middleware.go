package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wandertrails/guide-booking-backend/internal/auth"
	"github.com/wandertrails/guide-booking-backend/internal/user"
)

// RequireAdmin ensures the authenticated user is an admin.
// It MUST be used after auth.AuthRequired middleware. The role claim in the
// token is not trusted on its own; the user record is re-checked so revoked
// admins are locked out as soon as their account changes.
func RequireAdmin(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if u.Role != user.RoleAdmin || !u.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}
