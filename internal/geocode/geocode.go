// Package geocode turns a free-form address into coordinates.
package geocode

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/earcherc/realfoodfinder/internal/config"
	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/pkg/e"
)

// NotFoundMessage is shown to submitters whose address could not be resolved.
const NotFoundMessage = "We could not locate that address. Please enter a more specific address."

type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// New picks the provider named in cfg.
func New(cfg config.GeocodeConfig, logger *slog.Logger) Geocoder {
	if cfg.Provider == "static" {
		logger.Warn("geocoding uses a static point, every address resolves",
			slog.Float64("lat", cfg.StaticLat),
			slog.Float64("lng", cfg.StaticLng))
		return Static{Point: domain.Coordinates{Lat: cfg.StaticLat, Lng: cfg.StaticLng}}
	}
	return NewNominatim(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

func notFound() error {
	return &e.GeocodeError{Message: NotFoundMessage}
}

// Static resolves every address to the same point.
type Static struct {
	Point domain.Coordinates
}

func (s Static) Geocode(_ context.Context, _ string) (domain.Coordinates, error) {
	return s.Point, nil
}
