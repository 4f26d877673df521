package booking

import (
	"context"
	"time"

	"github.com/playon/turf-booking-backend/internal/metrics"
	"github.com/playon/turf-booking-backend/internal/slots"
	"github.com/playon/turf-booking-backend/internal/turf"
)

// AvailableSlot is a candidate hourly slot annotated for a (turf, date)
// pair. IsAvailable is derived for display; booking creation re-checks
// conflicts against current data before inserting.
type AvailableSlot struct {
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	DisplayLabel string    `json:"display_label"`
	IsAvailable  bool      `json:"is_available"`
}

// AvailabilityService computes the bookable slot grid for a turf and date.
type AvailabilityService interface {
	GetAvailableSlots(ctx context.Context, turfID string, date time.Time) ([]AvailableSlot, error)
	GetBookedSlots(ctx context.Context, turfID string, date time.Time) ([]*Booking, error)

	// GetAvailableEndTimes returns the valid end slots for a booking that
	// starts at start: every slot from start up to the returned slot's end
	// must be available, so a booked intermediate hour cuts the run short.
	GetAvailableEndTimes(ctx context.Context, turfID string, date, start time.Time) ([]AvailableSlot, error)
}

type availabilityService struct {
	repo        Repository
	turfService turf.Service
	cache       *AvailabilityCache
	maxHours    int
	now         func() time.Time
}

func NewAvailabilityService(repo Repository, turfService turf.Service, cache *AvailabilityCache, maxHours int) AvailabilityService {
	return &availabilityService{
		repo:        repo,
		turfService: turfService,
		cache:       cache,
		maxHours:    maxHours,
		now:         time.Now,
	}
}

func (s *availabilityService) GetAvailableSlots(ctx context.Context, turfID string, date time.Time) ([]AvailableSlot, error) {
	metrics.IncAvailabilityQuery()

	t, err := s.turfService.GetByID(ctx, turfID)
	if err != nil {
		if err == turf.ErrNotFound {
			return nil, ErrTurfNotFound
		}
		return nil, err
	}

	dayStart, dayEnd := slots.DayBounds(date)
	now := s.now()

	// Grids for future days only depend on stored bookings, so they can be
	// cached; today's grid shifts with the clock.
	cacheable := dayStart.After(now)
	if cacheable {
		if cached, ok := s.cache.Get(ctx, turfID, date); ok {
			return cached, nil
		}
	}

	candidates, err := candidateSlots(t, date)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListConfirmedOverlapping(ctx, turfID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	booked := make([]slots.Interval, len(existing))
	for i, b := range existing {
		booked[i] = slots.Interval{Start: b.StartTime, End: b.EndTime}
	}

	result := make([]AvailableSlot, len(candidates))
	for i, c := range candidates {
		available := !slots.OverlapsAny(c.Interval(), booked)
		// Slots whose start has already passed are not bookable.
		if available && !c.StartTime.After(now) {
			available = false
		}
		result[i] = AvailableSlot{
			StartTime:    c.StartTime,
			EndTime:      c.EndTime,
			DisplayLabel: c.DisplayLabel,
			IsAvailable:  available,
		}
	}

	if cacheable {
		s.cache.Set(ctx, turfID, date, result)
	}
	return result, nil
}

func (s *availabilityService) GetBookedSlots(ctx context.Context, turfID string, date time.Time) ([]*Booking, error) {
	if _, err := s.turfService.GetByID(ctx, turfID); err != nil {
		if err == turf.ErrNotFound {
			return nil, ErrTurfNotFound
		}
		return nil, err
	}

	dayStart, dayEnd := slots.DayBounds(date)
	return s.repo.ListConfirmedOverlapping(ctx, turfID, dayStart, dayEnd)
}

func (s *availabilityService) GetAvailableEndTimes(ctx context.Context, turfID string, date, start time.Time) ([]AvailableSlot, error) {
	grid, err := s.GetAvailableSlots(ctx, turfID, date)
	if err != nil {
		return nil, err
	}

	maxDuration := time.Duration(s.maxHours) * time.Hour

	// Walk the ordered grid from the requested start and keep extending the
	// run while every intermediate slot is free. The first booked or
	// missing hour ends the run: an end time past it would book through an
	// unavailable slot.
	var result []AvailableSlot
	next := start
	for _, slot := range grid {
		if slot.StartTime.Before(start) {
			continue
		}
		if !slot.StartTime.Equal(next) {
			break
		}
		if slot.EndTime.Sub(start) > maxDuration {
			break
		}
		if !slot.IsAvailable {
			break
		}
		result = append(result, slot)
		next = slot.EndTime
	}
	return result, nil
}

// candidateSlots derives the day's raw slot grid from the turf's policy.
func candidateSlots(t *turf.Turf, date time.Time) ([]slots.Slot, error) {
	if t.Policy.Kind == turf.PolicyExplicitWindows {
		return slots.GenerateWithin(date, t.Policy.Windows)
	}
	return slots.Generate(date, t.Policy.StartHour, t.Policy.EndHour)
}
