package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings", authMiddleware)

	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PATCH("/:id/status", h.UpdateStatus)
	group.DELETE("/:id", h.Delete)

	// === Public Routes ===
	g.GET("/guides/:id/availability", h.Availability)
}
