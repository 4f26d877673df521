package turf

import (
	"context"
	"strings"

	"github.com/playon/turf-booking-backend/internal/auth"
	"github.com/playon/turf-booking-backend/internal/slots"
)

type CreateRequest struct {
	Name         string
	Location     string
	Description  string
	PricePerHour float64
}

type UpdateRequest struct {
	Name         *string
	Location     *string
	Description  *string
	PricePerHour *float64
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, caller auth.Identity) (*Turf, error)
	GetByID(ctx context.Context, id string) (*Turf, error)
	List(ctx context.Context, filter Filter) ([]*Turf, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, caller auth.Identity) (*Turf, error)
	Delete(ctx context.Context, id string, caller auth.Identity) error

	// SetAvailability validates and replaces the turf's explicit window
	// list wholesale, switching the turf to the explicit policy.
	SetAvailability(ctx context.Context, id string, windows []slots.Interval, caller auth.Identity) error

	// SetImageURL points the turf's cover image at url, or clears it when nil.
	SetImageURL(ctx context.Context, id string, url *string, caller auth.Identity) error

	Count(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// canManage reports whether the caller may modify the turf: its owner or an admin.
func canManage(t *Turf, caller auth.Identity) bool {
	return caller.IsAdmin() || t.OwnerID == caller.UserID
}

func (s *service) Create(ctx context.Context, req CreateRequest, caller auth.Identity) (*Turf, error) {
	if !caller.IsAdmin() && caller.Role != auth.RoleTurfOwner {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(req.Location) == "" {
		return nil, ErrEmptyLocation
	}
	if req.PricePerHour <= 0 {
		return nil, ErrInvalidPrice
	}

	t := &Turf{
		Name:         req.Name,
		Location:     req.Location,
		Description:  req.Description,
		PricePerHour: req.PricePerHour,
		OwnerID:      caller.UserID,
		Policy:       DefaultPolicy(),
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Turf, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Turf, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, caller auth.Identity) (*Turf, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(t, caller) {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		t.Name = *req.Name
	}
	if req.Location != nil {
		if strings.TrimSpace(*req.Location) == "" {
			return nil, ErrEmptyLocation
		}
		t.Location = *req.Location
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour <= 0 {
			return nil, ErrInvalidPrice
		}
		t.PricePerHour = *req.PricePerHour
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, id string, caller auth.Identity) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(t, caller) {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SetAvailability(ctx context.Context, id string, windows []slots.Interval, caller auth.Identity) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(t, caller) {
		return ErrPermissionDenied
	}

	if err := slots.ValidateWindows(windows); err != nil {
		return err
	}

	if err := s.repo.ReplaceWindows(ctx, id, windows); err != nil {
		return err
	}

	t.Policy = AvailabilityPolicy{Kind: PolicyExplicitWindows, Windows: windows}
	return s.repo.Update(ctx, t)
}

func (s *service) SetImageURL(ctx context.Context, id string, url *string, caller auth.Identity) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(t, caller) {
		return ErrPermissionDenied
	}

	t.ImageURL = url
	return s.repo.Update(ctx, t)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
