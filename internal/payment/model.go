package payment

import (
	"net/http"
	"time"

	"github.com/playon/turf-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "payment not found")
	ErrBookingNotFound = apperror.New(http.StatusNotFound, "booking not found")
	ErrNotAuthorized   = apperror.New(http.StatusForbidden, "you may only pay for your own bookings")
	ErrAlreadyPaid     = apperror.New(http.StatusConflict, "booking is already paid")
	ErrInvalidAmount   = apperror.New(http.StatusBadRequest, "payment amount does not match the booking total")
)

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Payment records the outcome of a checkout for a booking. The gateway is
// simulated, so every processed payment succeeds and gets a generated
// transaction ID.
type Payment struct {
	ID            string
	UserID        string
	BookingID     string
	Amount        float64
	Status        string
	TransactionID string
	CreatedAt     time.Time
}
