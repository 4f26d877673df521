package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/payments", authMiddleware)

	group.GET("", h.ListMine)
	group.POST("", h.Process)
	group.GET("/booking/:id", h.GetByBooking)
}
