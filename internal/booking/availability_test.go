package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playon/turf-booking-backend/internal/slots"
	"github.com/playon/turf-booking-backend/internal/turf"
)

func newAvailabilityFixture(t *testing.T, policy turf.AvailabilityPolicy, nowFn func() time.Time) (*fakeRepo, AvailabilityService) {
	t.Helper()

	repo := newFakeRepo()
	turfs := newFakeTurfService(&turf.Turf{
		ID:           testTurfID,
		Name:         "Greenfield Arena",
		PricePerHour: 1200,
		OwnerID:      "owner-1",
		Policy:       policy,
	})

	svc := NewAvailabilityService(repo, turfs, nil, 3).(*availabilityService)
	if nowFn != nil {
		svc.now = nowFn
	}
	return repo, svc
}

// farPast pins the clock well before the test date so no slot is hidden by
// the past-start rule unless a test wants it to be.
func farPast() time.Time {
	return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
}

func confirmed(startHour, endHour int) *Booking {
	return &Booking{
		UserID:    "user-9",
		TurfID:    testTurfID,
		Date:      dayAt(0),
		StartTime: dayAt(startHour),
		EndTime:   dayAt(endHour),
		Status:    StatusConfirmed,
	}
}

func TestGetAvailableSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("default window shape", func(t *testing.T) {
		_, svc := newAvailabilityFixture(t, turf.DefaultPolicy(), farPast)

		grid, err := svc.GetAvailableSlots(ctx, testTurfID, dayAt(0))
		require.NoError(t, err)
		require.Len(t, grid, 17)

		assert.Equal(t, dayAt(7), grid[0].StartTime)
		assert.Equal(t, dayAt(8), grid[0].EndTime)
		assert.Equal(t, "7:00 AM", grid[0].DisplayLabel)
		assert.Equal(t, dayAt(23), grid[16].StartTime)
		assert.Equal(t, "11:00 PM", grid[16].DisplayLabel)

		for _, s := range grid {
			assert.True(t, s.IsAvailable)
		}
	})

	t.Run("booked hours flip to unavailable, boundaries do not", func(t *testing.T) {
		repo, svc := newAvailabilityFixture(t, turf.DefaultPolicy(), farPast)
		require.NoError(t, repo.Create(ctx, confirmed(10, 12)))

		grid, err := svc.GetAvailableSlots(ctx, testTurfID, dayAt(0))
		require.NoError(t, err)

		for _, s := range grid {
			switch s.StartTime.Hour() {
			case 10, 11:
				assert.False(t, s.IsAvailable, "hour %d overlaps the booking", s.StartTime.Hour())
			default:
				assert.True(t, s.IsAvailable, "hour %d touches at most a boundary", s.StartTime.Hour())
			}
		}
	})

	t.Run("deterministic for the same inputs", func(t *testing.T) {
		repo, svc := newAvailabilityFixture(t, turf.DefaultPolicy(), farPast)
		require.NoError(t, repo.Create(ctx, confirmed(9, 10)))

		first, err := svc.GetAvailableSlots(ctx, testTurfID, dayAt(0))
		require.NoError(t, err)
		second, err := svc.GetAvailableSlots(ctx, testTurfID, dayAt(0))
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("cancelled bookings do not block slots", func(t *testing.T) {
		repo, svc := newAvailabilityFixture(t, turf.DefaultPolicy(), farPast)
		b := confirmed(10, 12)
		require.NoError(t, repo.Create(ctx, b))
		require.NoError(t, repo.UpdateStatus(ctx, b.ID, StatusCancelled))

		grid, err := svc.GetAvailableSlots(ctx, testTurfID, dayAt(0))
		require.NoError(t, err)
		for _, s := range grid {
			assert.True(t, s.IsAvailable)
		}
	})

	t.Run("past slots on the current day are unavailable", func(t *testing.T) {
		// Clock fixed mid-day: 12:30 on the queried date.
		now := dayAt(12).Add(30 * time.Minute)
		_, svc := newAvailabilityFixture(t, turf.DefaultPolicy(), func() time.Time { return now })

		grid, err := svc.GetAvailableSlots(ctx, testTurfID, dayAt(0))
		require.NoError(t, err)

		for _, s := range grid {
			if s.StartTime.After(now) {
				assert.True(t, s.IsAvailable, "hour %d is still ahead", s.StartTime.Hour())
			} else {
				assert.False(t, s.IsAvailable, "hour %d has already started", s.StartTime.Hour())
			}
		}
	})

	t.Run("future days are unaffected by the clock", func(t *testing.T) {
		now := dayAt(12).Add(30 * time.Minute)
		_, svc := newAvailabilityFixture(t, turf.DefaultPolicy(), func() time.Time { return now })

		tomorrow := dayAt(0).AddDate(0, 0, 1)
		grid, err := svc.GetAvailableSlots(ctx, testTurfID, tomorrow)
		require.NoError(t, err)

		for _, s := range grid {
			assert.True(t, s.IsAvailable)
		}
	})

	t.Run("explicit windows restrict the grid", func(t *testing.T) {
		policy := turf.AvailabilityPolicy{
			Kind: turf.PolicyExplicitWindows,
			Windows: []slots.Interval{
				{Start: dayAt(10), End: dayAt(13)},
				{Start: dayAt(18), End: dayAt(20)},
			},
		}
		_, svc := newAvailabilityFixture(t, policy, farPast)

		grid, err := svc.GetAvailableSlots(ctx, testTurfID, dayAt(0))
		require.NoError(t, err)
		require.Len(t, grid, 5)

		hours := make([]int, len(grid))
		for i, s := range grid {
			hours[i] = s.StartTime.Hour()
		}
		assert.Equal(t, []int{10, 11, 12, 18, 19}, hours)
	})

	t.Run("unknown turf", func(t *testing.T) {
		_, svc := newAvailabilityFixture(t, turf.DefaultPolicy(), farPast)
		_, err := svc.GetAvailableSlots(ctx, "missing", dayAt(0))
		assert.ErrorIs(t, err, ErrTurfNotFound)
	})
}

func TestGetBookedSlots(t *testing.T) {
	ctx := context.Background()
	repo, svc := newAvailabilityFixture(t, turf.DefaultPolicy(), farPast)

	require.NoError(t, repo.Create(ctx, confirmed(10, 12)))
	cancelled := confirmed(14, 15)
	require.NoError(t, repo.Create(ctx, cancelled))
	require.NoError(t, repo.UpdateStatus(ctx, cancelled.ID, StatusCancelled))

	booked, err := svc.GetBookedSlots(ctx, testTurfID, dayAt(0))
	require.NoError(t, err)
	require.Len(t, booked, 1)
	assert.Equal(t, dayAt(10), booked[0].StartTime)
	assert.Equal(t, dayAt(12), booked[0].EndTime)
}

func TestGetAvailableEndTimes(t *testing.T) {
	ctx := context.Background()

	t.Run("open day is capped by max duration", func(t *testing.T) {
		_, svc := newAvailabilityFixture(t, turf.DefaultPolicy(), farPast)

		ends, err := svc.GetAvailableEndTimes(ctx, testTurfID, dayAt(0), dayAt(9))
		require.NoError(t, err)
		require.Len(t, ends, 3)

		assert.Equal(t, dayAt(10), ends[0].EndTime)
		assert.Equal(t, dayAt(11), ends[1].EndTime)
		assert.Equal(t, dayAt(12), ends[2].EndTime)
	})

	t.Run("a booked intermediate hour cuts the run short", func(t *testing.T) {
		repo, svc := newAvailabilityFixture(t, turf.DefaultPolicy(), farPast)
		require.NoError(t, repo.Create(ctx, confirmed(11, 12)))

		ends, err := svc.GetAvailableEndTimes(ctx, testTurfID, dayAt(0), dayAt(9))
		require.NoError(t, err)
		require.Len(t, ends, 2)

		assert.Equal(t, dayAt(10), ends[0].EndTime)
		assert.Equal(t, dayAt(11), ends[1].EndTime)
	})

	t.Run("start on a booked slot yields nothing", func(t *testing.T) {
		repo, svc := newAvailabilityFixture(t, turf.DefaultPolicy(), farPast)
		require.NoError(t, repo.Create(ctx, confirmed(9, 10)))

		ends, err := svc.GetAvailableEndTimes(ctx, testTurfID, dayAt(0), dayAt(9))
		require.NoError(t, err)
		assert.Empty(t, ends)
	})

	t.Run("run stops at the end of the operating window", func(t *testing.T) {
		_, svc := newAvailabilityFixture(t, turf.DefaultPolicy(), farPast)

		// Last slot of the default window is [23:00, 24:00).
		ends, err := svc.GetAvailableEndTimes(ctx, testTurfID, dayAt(0), dayAt(22))
		require.NoError(t, err)
		require.Len(t, ends, 2)
		assert.Equal(t, dayAt(23), ends[0].EndTime)
		assert.Equal(t, dayAt(24), ends[1].EndTime)
	})
}
