package event

import (
	"net/http"
	"time"

	"github.com/playon/turf-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "event not found")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "name is required")
	ErrLocationRequired = apperror.New(http.StatusBadRequest, "location is required")
	ErrAlreadyJoined    = apperror.New(http.StatusConflict, "already registered for this event")
	ErrNotJoined        = apperror.New(http.StatusBadRequest, "not registered for this event")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Event is a community match or tournament organized around the turfs.
type Event struct {
	ID            string
	Name          string
	Date          time.Time
	Location      string
	Description   string
	OrganizerID   string
	OrganizerName string
	Participants  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines parameters for listing events.
type Filter struct {
	Upcoming bool
	Page     int
	PageSize int
}
