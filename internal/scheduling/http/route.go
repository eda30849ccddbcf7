package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the public scheduling routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/hosts/:id/slots", h.Slots)
}
