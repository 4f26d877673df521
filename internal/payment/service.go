package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/playon/turf-booking-backend/internal/auth"
	"github.com/playon/turf-booking-backend/internal/booking"
	"github.com/playon/turf-booking-backend/internal/turf"
)

type Service interface {
	Process(ctx context.Context, caller auth.Identity, bookingID string) (*Payment, error)
	GetByBookingID(ctx context.Context, caller auth.Identity, bookingID string) (*Payment, error)
	ListByUser(ctx context.Context, caller auth.Identity) ([]*Payment, error)
}

type service struct {
	repo           Repository
	bookingService booking.Service
	turfService    turf.Service
}

func NewService(repo Repository, bookingService booking.Service, turfService turf.Service) Service {
	return &service{
		repo:           repo,
		bookingService: bookingService,
		turfService:    turfService,
	}
}

// Process charges the caller for a confirmed booking. The gateway is mocked:
// the charge always succeeds and is recorded with a fresh transaction ID.
func (s *service) Process(ctx context.Context, caller auth.Identity, bookingID string) (*Payment, error) {
	b, err := s.bookingService.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	t, err := s.turfService.GetByID(ctx, b.TurfID)
	if err != nil {
		return nil, err
	}

	hours := b.EndTime.Sub(b.StartTime).Hours()
	p := &Payment{
		UserID:        b.UserID,
		BookingID:     b.ID,
		Amount:        hours * t.PricePerHour,
		Status:        StatusSucceeded,
		TransactionID: uuid.NewString(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByBookingID(ctx context.Context, caller auth.Identity, bookingID string) (*Payment, error) {
	p, err := s.repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if p.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	return p, nil
}

func (s *service) ListByUser(ctx context.Context, caller auth.Identity) ([]*Payment, error) {
	return s.repo.ListByUser(ctx, caller.UserID)
}
