package turfimage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/playon/turf-booking-backend/internal/auth"
	"github.com/playon/turf-booking-backend/internal/pkg/storage"
	"github.com/playon/turf-booking-backend/internal/turf"
)

// MaxUploadBytes caps turf photo uploads.
const MaxUploadBytes = 10 << 20

type Service interface {
	Upload(ctx context.Context, caller auth.Identity, turfID string, header *multipart.FileHeader) (*Image, error)
	Get(ctx context.Context, id string) (*Image, error)
	ListByTurf(ctx context.Context, turfID string) ([]*Image, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Image, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Image, error)
	Delete(ctx context.Context, caller auth.Identity, id string) error
}

type service struct {
	repo        Repository
	turfService turf.Service
	storage     storage.Storage
	imgProc     *storage.ImageProcessor
	logger      zerolog.Logger
}

func NewService(repo Repository, turfService turf.Service, store storage.Storage, logger zerolog.Logger) Service {
	return &service{
		repo:        repo,
		turfService: turfService,
		storage:     store,
		imgProc:     storage.NewImageProcessor(),
		logger:      logger.With().Str("component", "turfimage").Logger(),
	}
}

// Upload stores a turf photo and its thumbnail and makes it the turf's
// cover image. Only the turf owner or an admin may upload.
func (s *service) Upload(ctx context.Context, caller auth.Identity, turfID string, header *multipart.FileHeader) (*Image, error) {
	// Ownership is enforced by SetImageURL below, but check the turf
	// exists before touching storage.
	if _, err := s.turfService.GetByID(ctx, turfID); err != nil {
		return nil, err
	}

	if header.Size > MaxUploadBytes {
		return nil, ErrImageTooLarge
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(io.LimitReader(src, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read uploaded file failed: %w", err)
	}
	if int64(len(fileBytes)) > MaxUploadBytes {
		return nil, ErrImageTooLarge
	}

	imageID := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(header.Filename))
	shard := imageID[:2]
	storagePath := fmt.Sprintf("turfs/%s/%s%s", shard, imageID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("save image failed: %w", err)
	}

	var thumbnailPath *string
	thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), 400, 300)
	if err != nil {
		s.logger.Warn().Err(err).Str("image_id", imageID).Msg("thumbnail generation failed")
	} else {
		tPath := fmt.Sprintf("turfs/%s/%s_thumb.jpg", shard, imageID)
		if err := s.storage.Save(ctx, tPath, thumbReader); err != nil {
			s.logger.Warn().Err(err).Str("image_id", imageID).Msg("thumbnail save failed")
		} else {
			thumbnailPath = &tPath
		}
	}

	img := &Image{
		ID:            imageID,
		TurfID:        turfID,
		UploaderID:    caller.UserID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          int64(len(fileBytes)),
	}

	if err := s.repo.Create(ctx, img); err != nil {
		s.cleanup(ctx, img)
		return nil, err
	}

	url := URL(imageID)
	if err := s.turfService.SetImageURL(ctx, turfID, &url, caller); err != nil {
		if derr := s.repo.Delete(ctx, imageID); derr != nil {
			s.logger.Warn().Err(derr).Str("image_id", imageID).Msg("rollback of image record failed")
		}
		s.cleanup(ctx, img)
		return nil, err
	}

	return img, nil
}

func (s *service) cleanup(ctx context.Context, img *Image) {
	if err := s.storage.Delete(ctx, img.StoragePath); err != nil {
		s.logger.Warn().Err(err).Str("path", img.StoragePath).Msg("storage cleanup failed")
	}
	if img.ThumbnailPath != nil {
		if err := s.storage.Delete(ctx, *img.ThumbnailPath); err != nil {
			s.logger.Warn().Err(err).Str("path", *img.ThumbnailPath).Msg("storage cleanup failed")
		}
	}
}

func (s *service) Get(ctx context.Context, id string) (*Image, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByTurf(ctx context.Context, turfID string) ([]*Image, error) {
	return s.repo.ListByTurf(ctx, turfID)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Image, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	stream, err := s.storage.Get(ctx, img.StoragePath)
	if err != nil {
		return nil, nil, ErrNotFound
	}
	return stream, img, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Image, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if img.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}
	stream, err := s.storage.Get(ctx, *img.ThumbnailPath)
	if err != nil {
		return nil, nil, ErrNoThumbnail
	}
	return stream, img, nil
}

// Delete removes the photo and clears the turf's cover image when it
// pointed at this photo.
func (s *service) Delete(ctx context.Context, caller auth.Identity, id string) error {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	t, err := s.turfService.GetByID(ctx, img.TurfID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && t.OwnerID != caller.UserID {
		return turf.ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cleanup(ctx, img)

	if t.ImageURL != nil && *t.ImageURL == URL(id) {
		if err := s.turfService.SetImageURL(ctx, img.TurfID, nil, caller); err != nil {
			s.logger.Warn().Err(err).Str("turf_id", img.TurfID).Msg("clearing turf cover image failed")
		}
	}
	return nil
}
