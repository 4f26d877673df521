package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playon/turf-booking-backend/internal/auth"
	"github.com/playon/turf-booking-backend/internal/notification"
	"github.com/playon/turf-booking-backend/internal/slots"
	"github.com/playon/turf-booking-backend/internal/turf"
	"github.com/playon/turf-booking-backend/internal/user"
)

// fakeRepo is an in-memory Repository. Create arbitrates overlaps under a
// mutex the same way the database exclusion constraint does, so racing
// inserts resolve to exactly one winner.
type fakeRepo struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[string]*Booking)}
}

func (r *fakeRepo) overlapsLocked(turfID string, start, end time.Time) bool {
	for _, b := range r.bookings {
		if b.TurfID != turfID || b.Status != StatusConfirmed {
			continue
		}
		if b.StartTime.Before(end) && start.Before(b.EndTime) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.Status == StatusConfirmed && r.overlapsLocked(b.TurfID, b.StartTime, b.EndTime) {
		return ErrSlotConflict
	}

	r.seq++
	b.ID = fmt.Sprintf("booking-%d", r.seq)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*Booking
	for _, b := range r.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.TurfID != "" && b.TurfID != filter.TurfID {
			continue
		}
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, len(result), nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRepo) ListConfirmedOverlapping(_ context.Context, turfID string, from, to time.Time) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*Booking
	for _, b := range r.bookings {
		if b.TurfID != turfID || b.Status != StatusConfirmed {
			continue
		}
		if b.StartTime.Before(to) && from.Before(b.EndTime) {
			copied := *b
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func (r *fakeRepo) HasOverlap(_ context.Context, turfID string, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlapsLocked(turfID, start, end), nil
}

func (r *fakeRepo) ConfirmedRevenue(_ context.Context) (float64, error) {
	return 0, nil
}

func (r *fakeRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings), nil
}

// fakeTurfService serves a fixed set of turfs. Mutating operations are
// not exercised by these tests.
type fakeTurfService struct {
	turfs map[string]*turf.Turf
}

func newFakeTurfService(turfs ...*turf.Turf) *fakeTurfService {
	m := make(map[string]*turf.Turf)
	for _, t := range turfs {
		m[t.ID] = t
	}
	return &fakeTurfService{turfs: m}
}

func (s *fakeTurfService) GetByID(_ context.Context, id string) (*turf.Turf, error) {
	t, ok := s.turfs[id]
	if !ok {
		return nil, turf.ErrNotFound
	}
	return t, nil
}

func (s *fakeTurfService) Create(context.Context, turf.CreateRequest, auth.Identity) (*turf.Turf, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeTurfService) List(context.Context, turf.Filter) ([]*turf.Turf, int, error) {
	return nil, 0, nil
}

func (s *fakeTurfService) Update(context.Context, string, turf.UpdateRequest, auth.Identity) (*turf.Turf, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeTurfService) Delete(context.Context, string, auth.Identity) error {
	return errors.New("not implemented")
}

func (s *fakeTurfService) SetAvailability(context.Context, string, []slots.Interval, auth.Identity) error {
	return errors.New("not implemented")
}

func (s *fakeTurfService) SetImageURL(context.Context, string, *string, auth.Identity) error {
	return errors.New("not implemented")
}

func (s *fakeTurfService) Count(context.Context) (int, error) {
	return len(s.turfs), nil
}

// fakeUserService resolves every ID to the same user.
type fakeUserService struct{}

func (fakeUserService) Register(context.Context, string, string, string, auth.Role) (*user.User, error) {
	return nil, errors.New("not implemented")
}

func (fakeUserService) Login(context.Context, string, string) (*user.User, error) {
	return nil, errors.New("not implemented")
}

func (fakeUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	return &user.User{ID: id, Email: "player@example.com"}, nil
}

func (fakeUserService) List(context.Context, user.Filter) ([]*user.User, int, error) {
	return nil, 0, nil
}

func (fakeUserService) Delete(context.Context, string) error { return nil }

func (fakeUserService) Count(context.Context) (int, error) { return 0, nil }

// fakeNotifier records deliveries and can be told to fail.
type fakeNotifier struct {
	fail  bool
	calls chan notification.Summary
}

func newFakeNotifier(fail bool) *fakeNotifier {
	return &fakeNotifier{fail: fail, calls: make(chan notification.Summary, 8)}
}

func (n *fakeNotifier) BookingConfirmed(_ context.Context, _ string, s notification.Summary) error {
	n.calls <- s
	if n.fail {
		return errors.New("smtp unreachable")
	}
	return nil
}

const testTurfID = "turf-1"

func newTestService(repo *fakeRepo, notifier notification.Notifier) Service {
	turfs := newFakeTurfService(&turf.Turf{
		ID:           testTurfID,
		Name:         "Greenfield Arena",
		PricePerHour: 1200,
		OwnerID:      "owner-1",
		Policy:       turf.DefaultPolicy(),
	})
	return NewService(repo, turfs, fakeUserService{}, notifier, nil, 3, zerolog.Nop())
}

func dayAt(hour int) time.Time {
	return time.Date(2026, 9, 10, hour, 0, 0, 0, time.UTC)
}

func createReq(startHour, endHour int) CreateRequest {
	return CreateRequest{
		UserID:    "user-1",
		TurfID:    testTurfID,
		Date:      dayAt(0),
		StartTime: dayAt(startHour),
		EndTime:   dayAt(endHour),
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)
	ctx := context.Background()

	t.Run("start not before end", func(t *testing.T) {
		_, err := svc.Create(ctx, createReq(12, 12))
		assert.ErrorIs(t, err, ErrInvalidTimeRange)

		_, err = svc.Create(ctx, createReq(13, 12))
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("not hour aligned", func(t *testing.T) {
		req := createReq(10, 11)
		req.EndTime = req.EndTime.Add(30 * time.Minute)
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("duration over cap", func(t *testing.T) {
		_, err := svc.Create(ctx, createReq(10, 14))
		assert.ErrorIs(t, err, ErrDurationExceeded)
	})

	t.Run("at the cap is allowed", func(t *testing.T) {
		b, err := svc.Create(ctx, createReq(10, 13))
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, b.Status)
	})

	t.Run("unknown turf", func(t *testing.T) {
		req := createReq(14, 15)
		req.TurfID = "missing"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrTurfNotFound)
	})
}

func TestCreateBookingConflicts(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, createReq(10, 12))
	require.NoError(t, err)

	t.Run("overlapping range rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, createReq(11, 13))
		assert.ErrorIs(t, err, ErrSlotConflict)

		_, err = svc.Create(ctx, createReq(9, 11))
		assert.ErrorIs(t, err, ErrSlotConflict)

		// Fully contained
		_, err = svc.Create(ctx, createReq(10, 11))
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("touching boundaries do not conflict", func(t *testing.T) {
		_, err := svc.Create(ctx, createReq(12, 13))
		assert.NoError(t, err)

		_, err = svc.Create(ctx, createReq(9, 10))
		assert.NoError(t, err)
	})

	t.Run("cancelled booking frees the range", func(t *testing.T) {
		b, err := svc.Create(ctx, createReq(15, 16))
		require.NoError(t, err)

		caller := auth.Identity{UserID: "user-1", Role: auth.RoleUser}
		require.NoError(t, svc.Cancel(ctx, b.ID, caller))

		_, err = svc.Create(ctx, createReq(15, 16))
		assert.NoError(t, err)
	})
}

func TestCreateBookingConcurrent(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	const attempts = 8
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), createReq(18, 19))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var wins, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins, "exactly one racing request may win the slot")
	assert.Equal(t, attempts-1, conflicts)
}

func TestCancelBooking(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	owner := auth.Identity{UserID: "user-1", Role: auth.RoleUser}
	stranger := auth.Identity{UserID: "user-2", Role: auth.RoleUser}
	admin := auth.Identity{UserID: "admin-1", Role: auth.RoleAdmin}

	b, err := svc.Create(ctx, createReq(10, 11))
	require.NoError(t, err)

	t.Run("stranger may not cancel", func(t *testing.T) {
		err := svc.Cancel(ctx, b.ID, stranger)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("owner cancels, row survives as cancelled", func(t *testing.T) {
		require.NoError(t, svc.Cancel(ctx, b.ID, owner))

		got, err := svc.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		err := svc.Cancel(ctx, b.ID, owner)
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})

	t.Run("admin may cancel someone else's booking", func(t *testing.T) {
		b2, err := svc.Create(ctx, createReq(12, 13))
		require.NoError(t, err)
		assert.NoError(t, svc.Cancel(ctx, b2.ID, admin))
	})

	t.Run("completed is terminal", func(t *testing.T) {
		b3, err := svc.Create(ctx, createReq(14, 15))
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, b3.ID, StatusCompleted, admin)
		require.NoError(t, err)

		err = svc.Cancel(ctx, b3.ID, owner)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown booking", func(t *testing.T) {
		err := svc.Cancel(ctx, "missing", owner)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	admin := auth.Identity{UserID: "admin-1", Role: auth.RoleAdmin}
	owner := auth.Identity{UserID: "user-1", Role: auth.RoleUser}

	b, err := svc.Create(ctx, createReq(10, 11))
	require.NoError(t, err)

	t.Run("non-admin rejected", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, b.ID, StatusCompleted, owner)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, b.ID, Status("archived"), admin)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("confirmed to completed", func(t *testing.T) {
		got, err := svc.UpdateStatus(ctx, b.ID, StatusCompleted, admin)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, got.Status)
	})

	t.Run("terminal states stay terminal", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, b.ID, StatusCancelled, admin)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		_, err = svc.UpdateStatus(ctx, b.ID, StatusConfirmed, admin)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestBookingConfirmationNotification(t *testing.T) {
	t.Run("summary is delivered", func(t *testing.T) {
		notifier := newFakeNotifier(false)
		svc := newTestService(newFakeRepo(), notifier)

		b, err := svc.Create(context.Background(), createReq(10, 12))
		require.NoError(t, err)

		select {
		case summary := <-notifier.calls:
			assert.Equal(t, b.ID, summary.BookingID)
			assert.Equal(t, "Greenfield Arena", summary.TurfName)
			assert.Equal(t, "2026-09-10", summary.Date)
			assert.Equal(t, "10:00 AM - 12:00 PM", summary.TimeSlot)
		case <-time.After(2 * time.Second):
			t.Fatal("notification was never dispatched")
		}
	})

	t.Run("delivery failure does not fail the booking", func(t *testing.T) {
		notifier := newFakeNotifier(true)
		svc := newTestService(newFakeRepo(), notifier)

		b, err := svc.Create(context.Background(), createReq(10, 12))
		require.NoError(t, err)
		require.NotEmpty(t, b.ID)

		select {
		case <-notifier.calls:
		case <-time.After(2 * time.Second):
			t.Fatal("notification was never dispatched")
		}

		got, err := svc.GetByID(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, got.Status)
	})
}
