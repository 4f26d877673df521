package notification

import (
	"context"

	"github.com/rs/zerolog"
)

// Summary carries the booking details included in a confirmation message.
type Summary struct {
	BookingID string
	TurfName  string
	Date      string
	TimeSlot  string
}

// Notifier delivers booking confirmations. Delivery is best effort: the
// booking is already committed when a notifier runs, and a failed delivery
// must never surface as a booking failure.
type Notifier interface {
	BookingConfirmed(ctx context.Context, email string, s Summary) error
}

// LogNotifier writes confirmations to the application log. It stands in for
// the external mail collaborator in development and tests.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) BookingConfirmed(_ context.Context, email string, s Summary) error {
	n.logger.Info().
		Str("email", email).
		Str("booking_id", s.BookingID).
		Str("turf", s.TurfName).
		Str("date", s.Date).
		Str("time_slot", s.TimeSlot).
		Msg("booking confirmation sent")
	return nil
}
