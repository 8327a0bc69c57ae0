package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/guides")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	// === Authenticated Routes ===
	group.POST("", authMiddleware, h.Register)
	group.PATCH("/:id", authMiddleware, h.Update)
	group.DELETE("/:id", authMiddleware, h.Delete)

	// === Admin Routes ===
	group.PATCH("/:id/approval", authMiddleware, adminMiddleware, h.SetApproval)
}
