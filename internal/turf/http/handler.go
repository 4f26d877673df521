package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/playon/turf-booking-backend/internal/auth"
	"github.com/playon/turf-booking-backend/internal/pkg/response"
	"github.com/playon/turf-booking-backend/internal/turf"
)

type Handler struct {
	service turf.Service
}

func NewHandler(service turf.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := turf.Filter{
		OwnerID:  c.Query("owner_id"),
		Keyword:  c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	}

	turfs, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TurfResponse, len(turfs))
	for i, t := range turfs {
		items[i] = NewTurfResponse(t)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTurfResponse(t))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateTurfBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	caller := auth.GetIdentity(c)

	req := turf.CreateRequest{
		Name:         body.Name,
		Location:     body.Location,
		Description:  body.Description,
		PricePerHour: body.PricePerHour,
	}

	t, err := h.service.Create(c.Request.Context(), req, caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewTurfResponse(t))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateTurfBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	caller := auth.GetIdentity(c)

	req := turf.UpdateRequest{
		Name:         body.Name,
		Location:     body.Location,
		Description:  body.Description,
		PricePerHour: body.PricePerHour,
	}

	t, err := h.service.Update(c.Request.Context(), id, req, caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTurfResponse(t))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	caller := auth.GetIdentity(c)

	if err := h.service.Delete(c.Request.Context(), id, caller); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetAvailability replaces the turf's published availability windows.
// The list is validated as a whole; an invalid entry rejects everything.
func (h *Handler) SetAvailability(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body SetAvailabilityBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	caller := auth.GetIdentity(c)

	if err := h.service.SetAvailability(c.Request.Context(), id, body.Intervals(), caller); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "availability updated"})
}
