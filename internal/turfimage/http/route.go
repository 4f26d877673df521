package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/turfs/:id/images", h.ListByTurf)
	g.POST("/turfs/:id/images", authMiddleware, h.Upload)

	group := g.Group("/turf-images")
	group.GET("/:id", h.Serve)
	group.GET("/:id/thumbnail", h.ServeThumbnail)
	group.DELETE("/:id", authMiddleware, h.Delete)
}
