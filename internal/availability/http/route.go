package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers availability-rule routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, hostMiddleware gin.HandlerFunc) {
	group := g.Group("/availability-rules")

	// === Public Routes ===
	group.GET("", h.List)    // Browse a host's published rules
	group.GET("/:id", h.Get) // Rule details

	// === Host Routes ===
	group.POST("", authMiddleware, hostMiddleware, h.Create)
	group.PATCH("/:id", authMiddleware, hostMiddleware, h.Update)
	group.DELETE("/:id", authMiddleware, hostMiddleware, h.Delete)
}
