package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/pkg/e"
)

// stepClock returns t0, t0+1s, t0+2s, ... on successive calls.
func stepClock(t0 time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		now := t0.Add(time.Duration(n) * time.Second)
		n++
		return now
	}
}

func newLocation(name string) domain.NewLocation {
	email := "a@b.com"
	return domain.NewLocation{
		Name:           name,
		Type:           domain.LocationFarm,
		Latitude:       39.1,
		Longitude:      -89.6,
		Foods:          []string{"Eggs"},
		Tags:           []string{},
		SubmitterEmail: &email,
	}
}

func TestLocationStore_CreateIsPending(t *testing.T) {
	ctx := context.Background()
	store := NewLocationStore(DefaultLocationSeed())

	got, err := store.Create(ctx, newLocation("Test Farm"))
	require.NoError(t, err)

	assert.Equal(t, int64(1000), got.ID)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))

	next, err := store.Create(ctx, newLocation("Second Farm"))
	require.NoError(t, err)
	assert.Equal(t, int64(1001), next.ID)
}

func TestLocationStore_ListApprovedFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	store := NewLocationStore(DefaultLocationSeed())

	created, err := store.Create(ctx, newLocation("Pending Farm"))
	require.NoError(t, err)

	rejected, err := store.Create(ctx, newLocation("Rejected Farm"))
	require.NoError(t, err)
	_, err = store.UpdateStatus(ctx, rejected.ID, domain.StatusRejected)
	require.NoError(t, err)

	approved, err := store.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 3)
	for _, l := range approved {
		assert.Equal(t, domain.StatusApproved, l.Status)
		assert.NotEqual(t, created.ID, l.ID)
	}
	assert.Equal(t, []int64{3, 2, 1}, locationIDs(approved))

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt), "ListAll must be newest first")
	}
}

func TestLocationStore_TiesBrokenByID(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	store := NewLocationStore(nil, WithClock(func() time.Time { return fixed }))

	for _, name := range []string{"A Farm", "B Farm", "C Farm"} {
		_, err := store.Create(ctx, newLocation(name))
		require.NoError(t, err)
	}

	first, err := store.ListAll(ctx)
	require.NoError(t, err)
	second, err := store.ListAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, []int64{3, 2, 1}, locationIDs(first))
	assert.Equal(t, locationIDs(first), locationIDs(second))
}

func TestLocationStore_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewLocationStore(nil, WithClock(stepClock(t0)))

	created, err := store.Create(ctx, newLocation("Test Farm"))
	require.NoError(t, err)

	approved, err := store.UpdateStatus(ctx, created.ID, domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Status)
	assert.True(t, approved.UpdatedAt.After(created.UpdatedAt))
	assert.True(t, approved.CreatedAt.Equal(created.CreatedAt))

	// reject-then-approve is allowed
	rejected, err := store.UpdateStatus(ctx, created.ID, domain.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Status)
	again, err := store.UpdateStatus(ctx, created.ID, domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, again.Status)
	assert.False(t, again.UpdatedAt.Before(rejected.UpdatedAt))
}

func TestLocationStore_UpdatedAtNeverMovesBack(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := []time.Time{t0, t0.Add(-time.Hour)}
	i := 0
	store := NewLocationStore(nil, WithClock(func() time.Time {
		now := calls[i]
		i++
		return now
	}))

	created, err := store.Create(ctx, newLocation("Test Farm"))
	require.NoError(t, err)

	updated, err := store.UpdateStatus(ctx, created.ID, domain.StatusApproved)
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.Equal(created.UpdatedAt))
}

func TestLocationStore_UpdateStatusNotFound(t *testing.T) {
	ctx := context.Background()
	state := &LocationState{NextID: 1}
	store := NewLocationStore(state)

	_, err := store.UpdateStatus(ctx, 999999, domain.StatusApproved)
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrNotFound))
	assert.Empty(t, state.Records)
	assert.Equal(t, int64(1), state.NextID)
}

func TestLocationStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewLocationStore(DefaultLocationSeed())

	list, err := store.ListApproved(ctx)
	require.NoError(t, err)
	list[0].Status = domain.StatusRejected
	list[0].Foods[0] = "mutated"

	again, err := store.ListApproved(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, again[0].Status)
	assert.NotEqual(t, "mutated", again[0].Foods[0])
}

func TestLocationStore_IsolatedInstances(t *testing.T) {
	ctx := context.Background()
	a := NewLocationStore(DefaultLocationSeed())
	b := NewLocationStore(DefaultLocationSeed())

	_, err := a.Create(ctx, newLocation("Only In A"))
	require.NoError(t, err)

	allB, err := b.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, allB, 3)
}

func TestLinkStore(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewLinkStore(DefaultLinkSeed(), WithClock(stepClock(t0)))

	created, err := store.Create(ctx, domain.NewLink{
		Title:          "Spring Water Delivery",
		URL:            "https://example.com/water",
		Country:        "Canada",
		Products:       []string{"Water"},
		SubmitterEmail: "water@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), created.ID)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
	assert.NotNil(t, created.Tags)

	approved, err := store.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, int64(1), approved[0].ID)

	_, err = store.UpdateStatus(ctx, created.ID, domain.StatusApproved)
	require.NoError(t, err)

	approved, err = store.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 2)
	assert.Equal(t, created.ID, approved[0].ID, "newest approved link first")

	_, err = store.UpdateStatus(ctx, 424242, domain.StatusRejected)
	assert.True(t, errors.Is(err, e.ErrNotFound))
}

func locationIDs(items []*domain.Location) []int64 {
	ids := make([]int64, 0, len(items))
	for _, l := range items {
		ids = append(ids, l.ID)
	}
	return ids
}
