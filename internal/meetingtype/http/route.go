package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers meeting-type-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, hostMiddleware gin.HandlerFunc) {
	group := g.Group("/meeting-types")

	// === Public Routes ===
	group.GET("", h.List)    // Browse published meeting types
	group.GET("/:id", h.Get) // Meeting type details

	// === Host Routes ===
	group.POST("", authMiddleware, hostMiddleware, h.Create)
	group.PATCH("/:id", authMiddleware, hostMiddleware, h.Update)
	group.DELETE("/:id", authMiddleware, hostMiddleware, h.Delete)
}
