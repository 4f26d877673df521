package turf

import (
	"net/http"
	"time"

	"github.com/playon/turf-booking-backend/internal/pkg/apperror"
	"github.com/playon/turf-booking-backend/internal/slots"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "turf not found")
	ErrEmptyName        = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrEmptyLocation    = apperror.New(http.StatusBadRequest, "location cannot be empty")
	ErrInvalidPrice     = apperror.New(http.StatusBadRequest, "price per hour must be positive")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// PolicyKind selects how a turf's bookable slots are derived.
type PolicyKind string

const (
	// PolicyFixedWindow generates slots from a recurring daily window.
	PolicyFixedWindow PolicyKind = "fixed_window"
	// PolicyExplicitWindows generates slots only inside the turf's
	// published availability list.
	PolicyExplicitWindows PolicyKind = "explicit_windows"
)

// AvailabilityPolicy is the per-turf slot configuration. Exactly one of the
// two shapes applies, selected by Kind.
type AvailabilityPolicy struct {
	Kind      PolicyKind
	StartHour int // fixed_window only
	EndHour   int // fixed_window only
	Windows   []slots.Interval // explicit_windows only
}

// DefaultPolicy is the recurring 07:00-24:00 window turfs start with.
func DefaultPolicy() AvailabilityPolicy {
	return AvailabilityPolicy{
		Kind:      PolicyFixedWindow,
		StartHour: slots.DefaultDayStartHour,
		EndHour:   slots.DefaultDayEndHour,
	}
}

// Turf represents a bookable sports ground.
type Turf struct {
	ID           string
	Name         string
	Location     string
	Description  string
	PricePerHour float64
	OwnerID      string
	OwnerName    string
	ImageURL     *string
	Policy       AvailabilityPolicy
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter defines parameters for listing turfs.
type Filter struct {
	OwnerID  string
	Keyword  string
	Page     int
	PageSize int
}
