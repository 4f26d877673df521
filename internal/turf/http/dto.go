package http

import (
	"time"

	"github.com/playon/turf-booking-backend/internal/slots"
	"github.com/playon/turf-booking-backend/internal/turf"
)

type CreateTurfBody struct {
	Name         string  `json:"name" binding:"required"`
	Location     string  `json:"location" binding:"required"`
	Description  string  `json:"description"`
	PricePerHour float64 `json:"price_per_hour" binding:"required"`
}

type UpdateTurfBody struct {
	Name         *string  `json:"name"`
	Location     *string  `json:"location"`
	Description  *string  `json:"description"`
	PricePerHour *float64 `json:"price_per_hour"`
}

// SetAvailabilityBody replaces a turf's availability list wholesale.
type SetAvailabilityBody struct {
	Windows []WindowBody `json:"windows" binding:"required,dive"`
}

type WindowBody struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

func (b SetAvailabilityBody) Intervals() []slots.Interval {
	windows := make([]slots.Interval, len(b.Windows))
	for i, w := range b.Windows {
		windows[i] = slots.Interval{Start: w.Start, End: w.End}
	}
	return windows
}

type OwnerTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PolicyResponse struct {
	Kind      string       `json:"kind"`
	StartHour int          `json:"start_hour,omitempty"`
	EndHour   int          `json:"end_hour,omitempty"`
	Windows   []WindowBody `json:"windows,omitempty"`
}

type TurfResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Location     string         `json:"location"`
	Description  string         `json:"description,omitempty"`
	PricePerHour float64        `json:"price_per_hour"`
	Owner        OwnerTag       `json:"owner"`
	ImageURL     *string        `json:"image_url,omitempty"`
	Availability PolicyResponse `json:"availability"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func NewTurfResponse(t *turf.Turf) TurfResponse {
	policy := PolicyResponse{Kind: string(t.Policy.Kind)}
	switch t.Policy.Kind {
	case turf.PolicyExplicitWindows:
		policy.Windows = make([]WindowBody, len(t.Policy.Windows))
		for i, w := range t.Policy.Windows {
			policy.Windows[i] = WindowBody{Start: w.Start, End: w.End}
		}
	default:
		policy.StartHour = t.Policy.StartHour
		policy.EndHour = t.Policy.EndHour
	}

	return TurfResponse{
		ID:           t.ID,
		Name:         t.Name,
		Location:     t.Location,
		Description:  t.Description,
		PricePerHour: t.PricePerHour,
		Owner:        OwnerTag{ID: t.OwnerID, Name: t.OwnerName},
		ImageURL:     t.ImageURL,
		Availability: policy,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
