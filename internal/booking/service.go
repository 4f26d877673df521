package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/playon/turf-booking-backend/internal/auth"
	"github.com/playon/turf-booking-backend/internal/metrics"
	"github.com/playon/turf-booking-backend/internal/notification"
	"github.com/playon/turf-booking-backend/internal/slots"
	"github.com/playon/turf-booking-backend/internal/turf"
	"github.com/playon/turf-booking-backend/internal/user"
)

type CreateRequest struct {
	UserID    string
	TurfID    string
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Cancel flips the booking to cancelled. Allowed for the booking's
	// owner or an admin; cancelled and completed are terminal.
	Cancel(ctx context.Context, id string, caller auth.Identity) error

	// UpdateStatus is the admin bookkeeping path. The only legal
	// transitions are confirmed->cancelled and confirmed->completed.
	UpdateStatus(ctx context.Context, id string, status Status, caller auth.Identity) (*Booking, error)

	Count(ctx context.Context) (int, error)

	// ConfirmedRevenue sums hours x price over confirmed bookings.
	ConfirmedRevenue(ctx context.Context) (float64, error)
}

type service struct {
	repo        Repository
	turfService turf.Service
	userService user.Service
	notifier    notification.Notifier
	cache       *AvailabilityCache
	maxHours    int
	logger      zerolog.Logger
}

func NewService(
	repo Repository,
	turfService turf.Service,
	userService user.Service,
	notifier notification.Notifier,
	cache *AvailabilityCache,
	maxHours int,
	logger zerolog.Logger,
) Service {
	return &service{
		repo:        repo,
		turfService: turfService,
		userService: userService,
		notifier:    notifier,
		cache:       cache,
		maxHours:    maxHours,
		logger:      logger,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidTimeRange
	}

	duration := req.EndTime.Sub(req.StartTime)
	if duration%time.Hour != 0 {
		return nil, ErrInvalidTimeRange
	}
	if duration > time.Duration(s.maxHours)*time.Hour {
		return nil, ErrDurationExceeded
	}

	t, err := s.turfService.GetByID(ctx, req.TurfID)
	if err != nil {
		if err == turf.ErrNotFound {
			return nil, ErrTurfNotFound
		}
		return nil, err
	}

	// Authoritative conflict check at write time. The availability grid the
	// client saw may be stale; a second user may have taken the slot since.
	hasOverlap, err := s.repo.HasOverlap(ctx, req.TurfID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		metrics.IncBookingConflict()
		return nil, ErrSlotConflict
	}

	dayStart, _ := slots.DayBounds(req.Date)
	b := &Booking{
		UserID:    req.UserID,
		TurfID:    req.TurfID,
		TurfName:  t.Name,
		Date:      dayStart,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    StatusConfirmed,
	}

	// Repo.Create maps a racing overlap to ErrSlotConflict via the
	// database exclusion constraint.
	if err := s.repo.Create(ctx, b); err != nil {
		if err == ErrSlotConflict {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	metrics.IncBookingCreated()
	s.cache.Invalidate(ctx, b.TurfID, b.StartTime)
	s.cache.Invalidate(ctx, b.TurfID, b.EndTime)

	s.notifyConfirmed(b)

	return b, nil
}

// notifyConfirmed dispatches the confirmation without blocking the request.
// Delivery failure is logged and never rolls back the booking.
func (s *service) notifyConfirmed(b *Booking) {
	if s.notifier == nil {
		return
	}
	booking := *b
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		u, err := s.userService.GetByID(ctx, booking.UserID)
		if err != nil {
			s.logger.Warn().Err(err).Str("booking_id", booking.ID).Msg("confirmation skipped: user lookup failed")
			return
		}

		summary := notification.Summary{
			BookingID: booking.ID,
			TurfName:  booking.TurfName,
			Date:      booking.Date.Format("2006-01-02"),
			TimeSlot:  slots.DisplayLabel(booking.StartTime) + " - " + slots.DisplayLabel(booking.EndTime),
		}
		if err := s.notifier.BookingConfirmed(ctx, u.Email, summary); err != nil {
			s.logger.Warn().Err(err).Str("booking_id", booking.ID).Msg("confirmation delivery failed")
		}
	}()
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, id string, caller auth.Identity) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if b.UserID != caller.UserID && !caller.IsAdmin() {
		return ErrNotAuthorized
	}

	switch b.Status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return err
	}

	metrics.IncBookingStatusChanged(string(StatusCancelled))
	s.cache.Invalidate(ctx, b.TurfID, b.StartTime)
	s.cache.Invalidate(ctx, b.TurfID, b.EndTime)
	return nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status, caller auth.Identity) (*Booking, error) {
	if !caller.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	if !ValidStatus(string(status)) {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Cancelled and completed are terminal; there is no un-cancel and no
	// transition into confirmed.
	if b.Status != StatusConfirmed || status == StatusConfirmed {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	metrics.IncBookingStatusChanged(string(status))
	s.cache.Invalidate(ctx, b.TurfID, b.StartTime)
	s.cache.Invalidate(ctx, b.TurfID, b.EndTime)

	b.Status = status
	return b, nil
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *service) ConfirmedRevenue(ctx context.Context) (float64, error) {
	return s.repo.ConfirmedRevenue(ctx)
}
