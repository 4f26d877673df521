package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/events")

	group.GET("", h.List)
	group.GET("/:id", h.Get)

	group.POST("", authMiddleware, h.Create)
	group.DELETE("/:id", authMiddleware, h.Delete)
	group.POST("/:id/join", authMiddleware, h.Join)
	group.POST("/:id/leave", authMiddleware, h.Leave)
}
