package turfimage

import (
	"net/http"
	"time"

	"github.com/playon/turf-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "image not found")
	ErrNotAnImage    = apperror.New(http.StatusBadRequest, "uploaded file is not an image")
	ErrImageTooLarge = apperror.New(http.StatusRequestEntityTooLarge, "image exceeds the size limit")
	ErrNoThumbnail   = apperror.New(http.StatusNotFound, "image has no thumbnail")
)

// Image is a photo attached to a turf. Originals and thumbnails live in
// blob storage; only metadata and storage paths are persisted.
type Image struct {
	ID            string
	TurfID        string
	UploaderID    string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// URL returns the public path for fetching the image by ID.
func URL(id string) string {
	return "/turf-images/" + id
}

// ThumbnailURL returns the public path for the image's thumbnail.
func ThumbnailURL(id string) string {
	return "/turf-images/" + id + "/thumbnail"
}
