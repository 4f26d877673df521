package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/turfs")

	// Browsing is public.
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	// Mutations require an authenticated owner or admin.
	group.POST("", authMiddleware, h.Create)
	group.PATCH("/:id", authMiddleware, h.Update)
	group.DELETE("/:id", authMiddleware, h.Delete)
	group.PUT("/:id/availability", authMiddleware, h.SetAvailability)
}
