package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/turfs/:id/reviews", h.ListByTurf)
	g.POST("/turfs/:id/reviews", authMiddleware, h.Create)
	g.DELETE("/reviews/:id", authMiddleware, h.Delete)
}
