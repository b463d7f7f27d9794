package service

import (
	"context"

	"github.com/earcherc/realfoodfinder/internal/domain"
)

type catalogService struct {
	locations LocationRepository
	links     LinkRepository
}

func NewCatalogService(locations LocationRepository, links LinkRepository) CatalogService {
	return &catalogService{locations: locations, links: links}
}

func (s *catalogService) ApprovedLocations(ctx context.Context) ([]*domain.Location, error) {
	return s.locations.ListApproved(ctx)
}

func (s *catalogService) ApprovedLinks(ctx context.Context) ([]*domain.Link, error) {
	return s.links.ListApproved(ctx)
}
