package review

import (
	"context"
	"strings"

	"github.com/playon/turf-booking-backend/internal/auth"
	"github.com/playon/turf-booking-backend/internal/turf"
)

type Service interface {
	Create(ctx context.Context, caller auth.Identity, turfID, comment string) (*Review, error)
	ListByTurf(ctx context.Context, turfID string) ([]*Review, error)
	Delete(ctx context.Context, caller auth.Identity, id string) error
}

type service struct {
	repo        Repository
	turfService turf.Service
}

func NewService(repo Repository, turfService turf.Service) Service {
	return &service{repo: repo, turfService: turfService}
}

func (s *service) Create(ctx context.Context, caller auth.Identity, turfID, comment string) (*Review, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, ErrCommentRequired
	}

	if _, err := s.turfService.GetByID(ctx, turfID); err != nil {
		return nil, ErrTurfNotFound
	}

	rev := &Review{
		UserID:  caller.UserID,
		TurfID:  turfID,
		Comment: comment,
	}
	if err := s.repo.Create(ctx, rev); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, rev.ID)
}

func (s *service) ListByTurf(ctx context.Context, turfID string) ([]*Review, error) {
	return s.repo.ListByTurf(ctx, turfID)
}

func (s *service) Delete(ctx context.Context, caller auth.Identity, id string) error {
	rev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rev.UserID != caller.UserID && !caller.IsAdmin() {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}
