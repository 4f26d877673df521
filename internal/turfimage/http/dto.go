package http

import (
	"time"

	"github.com/playon/turf-booking-backend/internal/turfimage"
)

type ImageResponse struct {
	ID           string    `json:"id"`
	TurfID       string    `json:"turf_id"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewImageResponse(img *turfimage.Image) ImageResponse {
	resp := ImageResponse{
		ID:          img.ID,
		TurfID:      img.TurfID,
		URL:         turfimage.URL(img.ID),
		ContentType: img.ContentType,
		Size:        img.Size,
		CreatedAt:   img.CreatedAt,
	}
	if img.ThumbnailPath != nil {
		u := turfimage.ThumbnailURL(img.ID)
		resp.ThumbnailURL = &u
	}
	return resp
}
