package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/pkg/e"
)

// LocationState is the mutable state behind a LocationStore.
type LocationState struct {
	Records []*domain.Location
	NextID  int64
}

type LocationStore struct {
	state *LocationState
	opts  options
}

func NewLocationStore(state *LocationState, opts ...Option) *LocationStore {
	if state == nil {
		state = &LocationState{NextID: 1}
	}
	return &LocationStore{state: state, opts: buildOptions(opts)}
}

func (s *LocationStore) ListApproved(_ context.Context) ([]*domain.Location, error) {
	out := make([]*domain.Location, 0, len(s.state.Records))
	for _, rec := range s.state.Records {
		if rec.Status == domain.StatusApproved {
			out = append(out, rec.Clone())
		}
	}
	sortLocations(out)
	return out, nil
}

func (s *LocationStore) ListAll(_ context.Context) ([]*domain.Location, error) {
	out := make([]*domain.Location, 0, len(s.state.Records))
	for _, rec := range s.state.Records {
		out = append(out, rec.Clone())
	}
	sortLocations(out)
	return out, nil
}

func (s *LocationStore) Create(_ context.Context, in domain.NewLocation) (*domain.Location, error) {
	now := s.opts.now()

	rec := &domain.Location{
		ID:             s.state.NextID,
		Name:           in.Name,
		Type:           in.Type,
		Description:    in.Description,
		Address:        in.Address,
		Country:        in.Country,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		Foods:          append([]string{}, in.Foods...),
		Tags:           append([]string{}, in.Tags...),
		SubmitterName:  in.SubmitterName,
		SubmitterEmail: in.SubmitterEmail,
		Status:         domain.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	s.state.NextID++
	s.state.Records = append(s.state.Records, rec)
	return rec.Clone(), nil
}

func (s *LocationStore) UpdateStatus(_ context.Context, id int64, status domain.Status) (*domain.Location, error) {
	const op = "memory.Location.UpdateStatus"

	for _, rec := range s.state.Records {
		if rec.ID != id {
			continue
		}
		rec.Status = status
		rec.UpdatedAt = laterOf(rec.UpdatedAt, s.opts.now())
		return rec.Clone(), nil
	}
	return nil, fmt.Errorf("%s: location %d: %w", op, id, e.ErrNotFound)
}

func sortLocations(items []*domain.Location) {
	newestFirst(items,
		func(l *domain.Location) time.Time { return l.CreatedAt },
		func(l *domain.Location) int64 { return l.ID },
	)
}

// DefaultLocationSeed returns the example records shown on a fresh dev server.
func DefaultLocationSeed() *LocationState {
	return &LocationState{
		NextID: 1000,
		Records: []*domain.Location{
			{
				ID:            1,
				Name:          "Morning Dew Farm",
				Type:          domain.LocationFarm,
				Description:   strPtr("Pasture-raised eggs and seasonal vegetables."),
				Address:       strPtr("Dane County"),
				Country:       strPtr("USA"),
				Latitude:      43.1731,
				Longitude:     -89.4012,
				Foods:         []string{"Eggs", "Vegetables"},
				Tags:          []string{"Pasture-Raised"},
				SubmitterName: strPtr("Seed Data"),
				Status:        domain.StatusApproved,
				CreatedAt:     time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC),
				UpdatedAt:     time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC),
			},
			{
				ID:            2,
				Name:          "El Bosque Community Drop",
				Type:          domain.LocationDropoff,
				Description:   strPtr("Weekly produce pickup from nearby regenerative growers."),
				Address:       strPtr("San Jose"),
				Country:       strPtr("Costa Rica"),
				Latitude:      9.9281,
				Longitude:     -84.0907,
				Foods:         []string{"Vegetables", "Fruit"},
				Tags:          []string{"Regenerative"},
				SubmitterName: strPtr("Seed Data"),
				Status:        domain.StatusApproved,
				CreatedAt:     time.Date(2026, 1, 3, 11, 15, 0, 0, time.UTC),
				UpdatedAt:     time.Date(2026, 1, 3, 11, 15, 0, 0, time.UTC),
			},
			{
				ID:            3,
				Name:          "Riverfront Whole Foods Collective",
				Type:          domain.LocationStore,
				Description:   strPtr("Local dairy, grain, and traditional ferments."),
				Address:       strPtr("Rotterdam"),
				Country:       strPtr("Netherlands"),
				Latitude:      51.9244,
				Longitude:     4.4777,
				Foods:         []string{"Milk", "Cheese", "Butter"},
				Tags:          []string{"Raw"},
				SubmitterName: strPtr("Seed Data"),
				Status:        domain.StatusApproved,
				CreatedAt:     time.Date(2026, 1, 8, 14, 20, 0, 0, time.UTC),
				UpdatedAt:     time.Date(2026, 1, 8, 14, 20, 0, 0, time.UTC),
			},
		},
	}
}
