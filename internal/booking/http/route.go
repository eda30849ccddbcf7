package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// Pre-flight validation is public so booking pages can check slots
	// before the visitor signs in.
	group.POST("/check", h.Check)

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.POST("/:id/cancel", h.Cancel)
		group.PATCH("/:id/status", h.UpdateStatus)
		group.POST("/:id/reschedule", h.Reschedule)
	}
}
