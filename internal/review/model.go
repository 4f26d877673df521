package review

import (
	"net/http"
	"time"

	"github.com/playon/turf-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "review not found")
	ErrCommentRequired  = apperror.New(http.StatusBadRequest, "comment is required")
	ErrTurfNotFound     = apperror.New(http.StatusNotFound, "turf not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Review is a user's comment on a turf.
type Review struct {
	ID        string
	UserID    string
	UserName  string
	TurfID    string
	Comment   string
	CreatedAt time.Time
}
