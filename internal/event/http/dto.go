package http

import (
	"time"

	"github.com/playon/turf-booking-backend/internal/event"
)

type CreateEventBody struct {
	Name        string    `json:"name" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	Description string    `json:"description"`
}

type OrganizerTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EventResponse struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Date         time.Time    `json:"date"`
	Location     string       `json:"location"`
	Description  string       `json:"description,omitempty"`
	Organizer    OrganizerTag `json:"organizer"`
	Participants int          `json:"participants"`
	CreatedAt    time.Time    `json:"created_at"`
}

func NewEventResponse(e *event.Event) EventResponse {
	return EventResponse{
		ID:           e.ID,
		Name:         e.Name,
		Date:         e.Date,
		Location:     e.Location,
		Description:  e.Description,
		Organizer:    OrganizerTag{ID: e.OrganizerID, Name: e.OrganizerName},
		Participants: e.Participants,
		CreatedAt:    e.CreatedAt,
	}
}
