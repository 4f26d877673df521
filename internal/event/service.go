package event

import (
	"context"
	"strings"
	"time"

	"github.com/playon/turf-booking-backend/internal/auth"
)

type CreateRequest struct {
	Name        string
	Date        time.Time
	Location    string
	Description string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, caller auth.Identity) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter Filter) ([]*Event, int, error)
	Delete(ctx context.Context, id string, caller auth.Identity) error
	Join(ctx context.Context, id string, caller auth.Identity) error
	Leave(ctx context.Context, id string, caller auth.Identity) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest, caller auth.Identity) (*Event, error) {
	if !caller.IsAdmin() && caller.Role != auth.RoleTurfOwner {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Location) == "" {
		return nil, ErrLocationRequired
	}

	e := &Event{
		Name:        req.Name,
		Date:        req.Date,
		Location:    req.Location,
		Description: req.Description,
		OrganizerID: caller.UserID,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Event, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Delete(ctx context.Context, id string, caller auth.Identity) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && e.OrganizerID != caller.UserID {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Join(ctx context.Context, id string, caller auth.Identity) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.AddParticipant(ctx, id, caller.UserID)
}

func (s *service) Leave(ctx context.Context, id string, caller auth.Identity) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.RemoveParticipant(ctx, id, caller.UserID)
}
