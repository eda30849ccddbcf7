package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lunamochi/meeting-scheduler-backend/internal/auth"
	"github.com/lunamochi/meeting-scheduler-backend/internal/user"
)

// RequireHost ensures the authenticated user has enabled hosting. Only hosts
// may publish meeting types and availability rules.
// It MUST be used after auth.AuthRequired middleware.
func RequireHost(userService user.Service) gin.HandlerFunc {
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

		if !u.IsHost {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: host access required"})
			return
		}

		c.Next()
	}
}
