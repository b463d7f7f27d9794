package service

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/pkg/e"
	"github.com/earcherc/realfoodfinder/pkg/validator"
)

type moderationService struct {
	locations LocationRepository
	links     LinkRepository
	adminKey  string
	logger    *slog.Logger
}

// NewModerationService guards moderation with adminKey. An empty key leaves
// moderation open to anyone.
func NewModerationService(locations LocationRepository, links LinkRepository, adminKey string, logger *slog.Logger) ModerationService {
	return &moderationService{
		locations: locations,
		links:     links,
		adminKey:  adminKey,
		logger:    logger,
	}
}

func (s *moderationService) Authorize(key string) error {
	if s.adminKey == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) != 1 {
		return e.ErrUnauthorized
	}
	return nil
}

func (s *moderationService) Dashboard(ctx context.Context, key string) (*domain.Dashboard, error) {
	if err := s.Authorize(key); err != nil {
		return nil, err
	}

	locations, err := s.locations.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.links.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	d := &domain.Dashboard{Locations: locations, Links: links}
	for _, l := range locations {
		d.LocationCounts.Add(l.Status)
	}
	for _, l := range links {
		d.LinkCounts.Add(l.Status)
	}
	return d, nil
}

func (s *moderationService) UpdateLocationStatus(ctx context.Context, key, rawID, rawStatus string) (*domain.Location, error) {
	req, err := s.authorizeUpdate(key, rawID, rawStatus)
	if err != nil {
		return nil, err
	}

	updated, err := s.locations.UpdateStatus(ctx, req.ID, domain.Status(req.Status))
	if err != nil {
		return nil, err
	}

	s.logger.Info("location moderated", slog.Int64("id", updated.ID), slog.String("status", updated.Status.String()))
	return updated, nil
}

func (s *moderationService) UpdateLinkStatus(ctx context.Context, key, rawID, rawStatus string) (*domain.Link, error) {
	req, err := s.authorizeUpdate(key, rawID, rawStatus)
	if err != nil {
		return nil, err
	}

	updated, err := s.links.UpdateStatus(ctx, req.ID, domain.Status(req.Status))
	if err != nil {
		return nil, err
	}

	s.logger.Info("link moderated", slog.Int64("id", updated.ID), slog.String("status", updated.Status.String()))
	return updated, nil
}

func (s *moderationService) authorizeUpdate(key, rawID, rawStatus string) (domain.StatusUpdateRequest, error) {
	if err := s.Authorize(key); err != nil {
		s.logger.Warn("moderation attempt with wrong admin key")
		return domain.StatusUpdateRequest{}, err
	}
	return validator.StatusUpdate(rawID, rawStatus)
}
