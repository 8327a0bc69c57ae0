package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	trips := g.Group("/trips/:id/photos")
	trips.GET("", h.List)
	trips.POST("", authMiddleware, h.Upload)

	photos := g.Group("/photos")
	photos.GET("/:id", h.Serve)
	photos.GET("/:id/thumbnail", h.ServeThumbnail)
	photos.DELETE("/:id", authMiddleware, h.Delete)
}
