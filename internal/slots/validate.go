package slots

import (
	"net/http"

	"github.com/playon/turf-booking-backend/internal/pkg/apperror"
)

var (
	ErrWindowOrder   = apperror.New(http.StatusBadRequest, "availability window start must be before end")
	ErrWindowOverlap = apperror.New(http.StatusBadRequest, "availability windows must not overlap")
)

// ValidateWindows checks an explicit availability list before it is stored:
// every window must have start < end and no two windows may overlap.
// Invalid input rejects the whole list; nothing is partially applied.
func ValidateWindows(windows []Interval) error {
	for _, w := range windows {
		if !w.Start.Before(w.End) {
			return ErrWindowOrder
		}
	}
	for i := 0; i < len(windows); i++ {
		for j := i + 1; j < len(windows); j++ {
			if Overlaps(windows[i], windows[j]) {
				return ErrWindowOverlap
			}
		}
	}
	return nil
}
