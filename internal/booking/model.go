package booking

import (
	"net/http"
	"time"

	"github.com/playon/turf-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrSlotConflict      = apperror.New(http.StatusConflict, "this time is no longer available, please choose another")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, "start time must be before end time on a whole-hour boundary")
	ErrDurationExceeded  = apperror.New(http.StatusBadRequest, "bookings are limited to the maximum allowed hours")
	ErrTurfNotFound      = apperror.New(http.StatusNotFound, "turf not found")
	ErrNotAuthorized     = apperror.New(http.StatusForbidden, "you may only cancel your own bookings")
	ErrAlreadyCancelled  = apperror.New(http.StatusConflict, "booking is already cancelled")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "booking status transition not allowed")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether s names a known booking status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking is a reservation of a turf for [StartTime, EndTime).
// Only confirmed bookings participate in conflict checks; cancellation
// flips the status and never deletes the row.
type Booking struct {
	ID        string
	UserID    string
	UserName  string
	TurfID    string
	TurfName  string
	Date      time.Time // calendar day, date-only semantics
	StartTime time.Time
	EndTime   time.Time // exclusive
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID   string
	TurfID   string
	Status   string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}
