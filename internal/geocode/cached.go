package geocode

import (
	"context"
	"log/slog"
	"time"

	"github.com/earcherc/realfoodfinder/internal/domain"
)

// Cache is satisfied by redis.GeocodeCache.
type Cache interface {
	Get(ctx context.Context, address string) (domain.Coordinates, bool, error)
	Set(ctx context.Context, address string, coords domain.Coordinates, ttl time.Duration) error
}

// Cached remembers successful lookups. Cache errors never fail a lookup.
type Cached struct {
	next   Geocoder
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewCached(next Geocoder, cache Cache, ttl time.Duration, logger *slog.Logger) *Cached {
	return &Cached{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (c *Cached) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	coords, ok, err := c.cache.Get(ctx, address)
	switch {
	case err != nil:
		c.logger.Warn("geocode cache read failed", slog.String("error", err.Error()))
	case ok:
		return coords, nil
	}

	coords, err = c.next.Geocode(ctx, address)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if err := c.cache.Set(ctx, address, coords, c.ttl); err != nil {
		c.logger.Warn("geocode cache write failed", slog.String("error", err.Error()))
	}
	return coords, nil
}
