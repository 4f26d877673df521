package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/playon/turf-booking-backend/internal/auth"
	"github.com/playon/turf-booking-backend/internal/booking"
	"github.com/playon/turf-booking-backend/internal/pkg/response"
)

type Handler struct {
	service      booking.Service
	availability booking.AvailabilityService
}

func NewHandler(service booking.Service, availability booking.AvailabilityService) *Handler {
	return &Handler{
		service:      service,
		availability: availability,
	}
}

// parseDate reads a YYYY-MM-DD query parameter.
func parseDate(c *gin.Context, key string) (time.Time, bool) {
	v := c.Query(key)
	if v == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": key + " is required"})
		return time.Time{}, false
	}
	d, err := time.ParseInLocation("2006-01-02", v, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key + ", expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	caller := auth.GetIdentity(c)

	// Regular users only ever see their own bookings; admins may filter by
	// any user or list everything.
	filterUserID := caller.UserID
	if caller.IsAdmin() {
		filterUserID = req.UserID
	}

	filter := booking.Filter{
		UserID:   filterUserID,
		TurfID:   req.TurfID,
		Status:   req.Status,
		From:     req.From,
		To:       req.To,
		Page:     page,
		PageSize: pageSize,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := time.ParseInLocation("2006-01-02", body.Date, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	caller := auth.GetIdentity(c)

	req := booking.CreateRequest{
		UserID:    caller.UserID,
		TurfID:    body.TurfID,
		Date:      date,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	caller := auth.GetIdentity(c)
	if b.UserID != caller.UserID && !caller.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Cancel flips the booking to cancelled; the row is kept for history.
func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	caller := auth.GetIdentity(c)

	if err := h.service.Cancel(c.Request.Context(), id, caller); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled successfully"})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	caller := auth.GetIdentity(c)

	b, err := h.service.UpdateStatus(c.Request.Context(), id, booking.Status(body.Status), caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// GetSlots returns the annotated hourly grid for a turf and date.
func (h *Handler) GetSlots(c *gin.Context) {
	turfID := c.Param("id")
	if _, err := uuid.Parse(turfID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	date, ok := parseDate(c, "date")
	if !ok {
		return
	}

	result, err := h.availability.GetAvailableSlots(c.Request.Context(), turfID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SlotResponse, len(result))
	for i, s := range result {
		items[i] = NewSlotResponse(s)
	}

	c.JSON(http.StatusOK, gin.H{"availableSlots": items})
}

// GetBookedSlots returns only the raw confirmed ranges for UIs that render
// their own grid.
func (h *Handler) GetBookedSlots(c *gin.Context) {
	turfID := c.Param("id")
	if _, err := uuid.Parse(turfID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	date, ok := parseDate(c, "date")
	if !ok {
		return
	}

	bookings, err := h.availability.GetBookedSlots(c.Request.Context(), turfID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookedSlotResponse, len(bookings))
	for i, b := range bookings {
		items[i] = BookedSlotResponse{ID: b.ID, StartTime: b.StartTime, EndTime: b.EndTime}
	}

	c.JSON(http.StatusOK, gin.H{"bookedSlots": items})
}

// GetEndTimes lists the valid end slots for a booking starting at the given time.
func (h *Handler) GetEndTimes(c *gin.Context) {
	turfID := c.Param("id")
	if _, err := uuid.Parse(turfID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	date, ok := parseDate(c, "date")
	if !ok {
		return
	}

	startStr := c.Query("start")
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start, expected RFC3339 datetime"})
		return
	}

	result, err := h.availability.GetAvailableEndTimes(c.Request.Context(), turfID, date, start)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SlotResponse, len(result))
	for i, s := range result {
		items[i] = NewSlotResponse(s)
	}

	c.JSON(http.StatusOK, gin.H{"endTimeSlots": items})
}
