package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all user-related routes (including Auth).
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware gin.HandlerFunc) {
	// Public Routes
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	g.GET("/hosts", h.ListHosts)

	// Authenticated Routes
	meGroup := g.Group("/me")
	meGroup.Use(authMiddleware)
	{
		meGroup.GET("", h.Me)
		meGroup.PATCH("", h.UpdateMe)
		meGroup.DELETE("", h.DeactivateMe)
		meGroup.POST("/host", h.BecomeHost)
	}
}
