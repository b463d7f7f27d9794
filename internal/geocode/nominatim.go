package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/earcherc/realfoodfinder/internal/config"
	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/pkg/e"
	"github.com/earcherc/realfoodfinder/pkg/validator"
)

type Nominatim struct {
	endpoint  string
	userAgent string
	http      *http.Client
	logger    *slog.Logger
}

func NewNominatim(cfg config.GeocodeConfig, client *http.Client, logger *slog.Logger) *Nominatim {
	return &Nominatim{
		endpoint:  cfg.Endpoint,
		userAgent: cfg.UserAgent,
		http:      client,
		logger:    logger,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (n *Nominatim) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	const op = "geocode.Nominatim.Geocode"

	u, err := url.Parse(n.endpoint)
	if err != nil {
		return domain.Coordinates{}, e.Wrap(op, err)
	}
	q := u.Query()
	q.Set("q", address)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.Coordinates{}, e.Wrap(op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return domain.Coordinates{}, e.WrapError(ctx, op, err)
		}
		n.logger.Warn("geocode request failed", slog.String("op", op), slog.String("error", err.Error()))
		return domain.Coordinates{}, notFound()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		n.logger.Warn("geocode upstream rejected request", slog.String("op", op), slog.String("status", resp.Status))
		return domain.Coordinates{}, notFound()
	}

	var results []nominatimResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&results); err != nil {
		n.logger.Warn("geocode response unreadable", slog.String("op", op), slog.String("error", err.Error()))
		return domain.Coordinates{}, notFound()
	}
	if len(results) == 0 {
		return domain.Coordinates{}, notFound()
	}

	coords, err := validator.Coordinates(results[0].Lat, results[0].Lon)
	if err != nil {
		n.logger.Warn("geocode returned unusable coordinates",
			slog.String("op", op),
			slog.String("lat", results[0].Lat),
			slog.String("lon", results[0].Lon))
		return domain.Coordinates{}, notFound()
	}

	return coords, nil
}
