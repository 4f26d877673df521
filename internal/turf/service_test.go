package turf

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playon/turf-booking-backend/internal/auth"
	"github.com/playon/turf-booking-backend/internal/slots"
)

type fakeRepo struct {
	mu      sync.Mutex
	seq     int
	turfs   map[string]*Turf
	windows map[string][]slots.Interval

	replaceCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		turfs:   make(map[string]*Turf),
		windows: make(map[string][]slots.Interval),
	}
}

func (r *fakeRepo) Create(_ context.Context, t *Turf) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	t.ID = fmt.Sprintf("turf-%d", r.seq)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	stored := *t
	r.turfs[t.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Turf, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.turfs[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *t
	copied.Policy.Windows = r.windows[id]
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Turf, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*Turf
	for _, t := range r.turfs {
		if filter.OwnerID != "" && t.OwnerID != filter.OwnerID {
			continue
		}
		copied := *t
		result = append(result, &copied)
	}
	return result, len(result), nil
}

func (r *fakeRepo) Update(_ context.Context, t *Turf) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.turfs[t.ID]; !ok {
		return ErrNotFound
	}
	stored := *t
	stored.UpdatedAt = time.Now()
	r.turfs[t.ID] = &stored
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.turfs[id]; !ok {
		return ErrNotFound
	}
	delete(r.turfs, id)
	return nil
}

func (r *fakeRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.turfs), nil
}

func (r *fakeRepo) ReplaceWindows(_ context.Context, turfID string, windows []slots.Interval) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.replaceCalls++
	r.windows[turfID] = windows
	return nil
}

func (r *fakeRepo) GetWindows(_ context.Context, turfID string) ([]slots.Interval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.windows[turfID], nil
}

var (
	ownerCaller = auth.Identity{UserID: "owner-1", Role: auth.RoleTurfOwner}
	adminCaller = auth.Identity{UserID: "admin-1", Role: auth.RoleAdmin}
	userCaller  = auth.Identity{UserID: "user-1", Role: auth.RoleUser}
)

func validCreate() CreateRequest {
	return CreateRequest{
		Name:         "Greenfield Arena",
		Location:     "North End",
		PricePerHour: 1200,
	}
}

func TestCreateTurf(t *testing.T) {
	ctx := context.Background()

	t.Run("owner role required", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.Create(ctx, validCreate(), userCaller)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		req := validCreate()
		req.Name = "   "
		_, err := svc.Create(ctx, req, ownerCaller)
		assert.ErrorIs(t, err, ErrEmptyName)

		req = validCreate()
		req.Location = ""
		_, err = svc.Create(ctx, req, ownerCaller)
		assert.ErrorIs(t, err, ErrEmptyLocation)

		req = validCreate()
		req.PricePerHour = 0
		_, err = svc.Create(ctx, req, ownerCaller)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("caller becomes owner, default policy applied", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		created, err := svc.Create(ctx, validCreate(), ownerCaller)
		require.NoError(t, err)
		assert.Equal(t, ownerCaller.UserID, created.OwnerID)
		assert.Equal(t, PolicyFixedWindow, created.Policy.Kind)
		assert.Equal(t, slots.DefaultDayStartHour, created.Policy.StartHour)
		assert.Equal(t, slots.DefaultDayEndHour, created.Policy.EndHour)
	})
}

func TestUpdateTurfPermissions(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.Create(ctx, validCreate(), ownerCaller)
	require.NoError(t, err)

	newName := "Riverside Pitch"

	t.Run("stranger denied", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID, UpdateRequest{Name: &newName}, userCaller)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("owner allowed", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, UpdateRequest{Name: &newName}, ownerCaller)
		require.NoError(t, err)
		assert.Equal(t, newName, updated.Name)
	})

	t.Run("admin allowed", func(t *testing.T) {
		price := 1500.0
		updated, err := svc.Update(ctx, created.ID, UpdateRequest{PricePerHour: &price}, adminCaller)
		require.NoError(t, err)
		assert.Equal(t, price, updated.PricePerHour)
	})

	t.Run("stranger may not delete", func(t *testing.T) {
		err := svc.Delete(ctx, created.ID, userCaller)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestSetAvailability(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	at := func(hour int) time.Time { return day.Add(time.Duration(hour) * time.Hour) }

	setup := func(t *testing.T) (*fakeRepo, Service, string) {
		t.Helper()
		repo := newFakeRepo()
		svc := NewService(repo)
		created, err := svc.Create(ctx, validCreate(), ownerCaller)
		require.NoError(t, err)
		return repo, svc, created.ID
	}

	t.Run("valid windows switch the policy", func(t *testing.T) {
		_, svc, id := setup(t)

		windows := []slots.Interval{
			{Start: at(10), End: at(13)},
			{Start: at(18), End: at(20)},
		}
		require.NoError(t, svc.SetAvailability(ctx, id, windows, ownerCaller))

		got, err := svc.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, PolicyExplicitWindows, got.Policy.Kind)
		assert.Equal(t, windows, got.Policy.Windows)
	})

	t.Run("inverted window rejects the whole list", func(t *testing.T) {
		repo, svc, id := setup(t)

		windows := []slots.Interval{
			{Start: at(10), End: at(13)},
			{Start: at(20), End: at(18)},
		}
		err := svc.SetAvailability(ctx, id, windows, ownerCaller)
		assert.ErrorIs(t, err, slots.ErrWindowOrder)
		assert.Zero(t, repo.replaceCalls, "nothing may be stored when validation fails")

		got, err := svc.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, PolicyFixedWindow, got.Policy.Kind)
	})

	t.Run("overlapping windows reject the whole list", func(t *testing.T) {
		repo, svc, id := setup(t)

		windows := []slots.Interval{
			{Start: at(10), End: at(13)},
			{Start: at(12), End: at(15)},
		}
		err := svc.SetAvailability(ctx, id, windows, ownerCaller)
		assert.ErrorIs(t, err, slots.ErrWindowOverlap)
		assert.Zero(t, repo.replaceCalls)
	})

	t.Run("touching windows are fine", func(t *testing.T) {
		_, svc, id := setup(t)

		windows := []slots.Interval{
			{Start: at(10), End: at(13)},
			{Start: at(13), End: at(15)},
		}
		assert.NoError(t, svc.SetAvailability(ctx, id, windows, ownerCaller))
	})

	t.Run("stranger denied", func(t *testing.T) {
		_, svc, id := setup(t)

		windows := []slots.Interval{{Start: at(10), End: at(13)}}
		err := svc.SetAvailability(ctx, id, windows, userCaller)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestSetImageURL(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.Create(ctx, validCreate(), ownerCaller)
	require.NoError(t, err)

	url := "/turf-images/abc"

	t.Run("stranger denied", func(t *testing.T) {
		err := svc.SetImageURL(ctx, created.ID, &url, userCaller)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("owner sets and clears", func(t *testing.T) {
		require.NoError(t, svc.SetImageURL(ctx, created.ID, &url, ownerCaller))

		got, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got.ImageURL)
		assert.Equal(t, url, *got.ImageURL)

		require.NoError(t, svc.SetImageURL(ctx, created.ID, nil, ownerCaller))
		got, err = svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got.ImageURL)
	})
}
