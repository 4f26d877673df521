package http

import (
	"time"

	"github.com/playon/turf-booking-backend/internal/review"
)

type CreateReviewBody struct {
	Comment string `json:"comment" binding:"required"`
}

type AuthorTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	TurfID    string    `json:"turf_id"`
	Author    AuthorTag `json:"author"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func NewReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		TurfID:    r.TurfID,
		Author:    AuthorTag{ID: r.UserID, Name: r.UserName},
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
