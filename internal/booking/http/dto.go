package http

import (
	"time"

	"github.com/playon/turf-booking-backend/internal/booking"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	TurfID string     `form:"turf_id" binding:"omitempty,uuid"`
	Status string     `form:"status" binding:"omitempty,oneof=confirmed cancelled completed"`
	UserID string     `form:"user_id" binding:"omitempty,uuid"`
	From   *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To     *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type UserTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TurfTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID        string    `json:"id"`
	User      UserTag   `json:"user"`
	Turf      TurfTag   `json:"turf"`
	Date      string    `json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		User:      UserTag{ID: b.UserID, Name: b.UserName},
		Turf:      TurfTag{ID: b.TurfID, Name: b.TurfName},
		Date:      b.Date.Format("2006-01-02"),
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type CreateBookingBody struct {
	TurfID    string    `json:"turf_id" binding:"required,uuid"`
	Date      string    `json:"date" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type UpdateStatusBody struct {
	Status string `json:"status" binding:"required,oneof=confirmed cancelled completed"`
}

// SlotResponse keeps the field names the mobile client already consumes.
type SlotResponse struct {
	StartTimeISO string `json:"startTimeISO"`
	EndTimeISO   string `json:"endTimeISO"`
	DisplayTime  string `json:"displayTime"`
	IsAvailable  bool   `json:"isAvailable"`
}

func NewSlotResponse(s booking.AvailableSlot) SlotResponse {
	return SlotResponse{
		StartTimeISO: s.StartTime.Format(time.RFC3339),
		EndTimeISO:   s.EndTime.Format(time.RFC3339),
		DisplayTime:  s.DisplayLabel,
		IsAvailable:  s.IsAvailable,
	}
}

type BookedSlotResponse struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}
