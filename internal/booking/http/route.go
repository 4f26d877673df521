package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	// Availability is browsable without an account.
	turfs := g.Group("/turfs")
	{
		turfs.GET("/:id/slots", h.GetSlots)
		turfs.GET("/:id/booked-slots", h.GetBookedSlots)
		turfs.GET("/:id/end-times", h.GetEndTimes)
	}

	group := g.Group("/bookings")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.DELETE("/:id", h.Cancel)
		group.PATCH("/:id/status", adminMiddleware, h.UpdateStatus)
	}
}
