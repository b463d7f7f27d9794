package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/pkg/e"
)

type LinkState struct {
	Records []*domain.Link
	NextID  int64
}

type LinkStore struct {
	state *LinkState
	opts  options
}

func NewLinkStore(state *LinkState, opts ...Option) *LinkStore {
	if state == nil {
		state = &LinkState{NextID: 1}
	}
	return &LinkStore{state: state, opts: buildOptions(opts)}
}

func (s *LinkStore) ListApproved(_ context.Context) ([]*domain.Link, error) {
	out := make([]*domain.Link, 0, len(s.state.Records))
	for _, rec := range s.state.Records {
		if rec.Status == domain.StatusApproved {
			out = append(out, rec.Clone())
		}
	}
	sortLinks(out)
	return out, nil
}

func (s *LinkStore) ListAll(_ context.Context) ([]*domain.Link, error) {
	out := make([]*domain.Link, 0, len(s.state.Records))
	for _, rec := range s.state.Records {
		out = append(out, rec.Clone())
	}
	sortLinks(out)
	return out, nil
}

func (s *LinkStore) Create(_ context.Context, in domain.NewLink) (*domain.Link, error) {
	now := s.opts.now()

	rec := &domain.Link{
		ID:             s.state.NextID,
		Title:          in.Title,
		URL:            in.URL,
		Country:        in.Country,
		Description:    in.Description,
		Products:       append([]string{}, in.Products...),
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

func (s *LinkStore) UpdateStatus(_ context.Context, id int64, status domain.Status) (*domain.Link, error) {
	const op = "memory.Link.UpdateStatus"

	for _, rec := range s.state.Records {
		if rec.ID != id {
			continue
		}
		rec.Status = status
		rec.UpdatedAt = laterOf(rec.UpdatedAt, s.opts.now())
		return rec.Clone(), nil
	}
	return nil, fmt.Errorf("%s: link %d: %w", op, id, e.ErrNotFound)
}

func sortLinks(items []*domain.Link) {
	newestFirst(items,
		func(l *domain.Link) time.Time { return l.CreatedAt },
		func(l *domain.Link) int64 { return l.ID },
	)
}

func DefaultLinkSeed() *LinkState {
	return &LinkState{
		NextID: 1000,
		Records: []*domain.Link{
			{
				ID:             1,
				Title:          "Raw Mountain Honey",
				URL:            "https://example.com/raw-honey",
				Country:        "United States",
				Description:    strPtr("Small-batch raw honey from a local beekeeper network."),
				Products:       []string{"Honey"},
				Tags:           []string{"Raw", "Unfiltered"},
				SubmitterName:  strPtr("Seed Data"),
				SubmitterEmail: "seed@realfoodfinder.local",
				Status:         domain.StatusApproved,
				CreatedAt:      time.Date(2026, 1, 9, 10, 0, 0, 0, time.UTC),
				UpdatedAt:      time.Date(2026, 1, 9, 10, 0, 0, 0, time.UTC),
			},
		},
	}
}
