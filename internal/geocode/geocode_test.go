package geocode

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earcherc/realfoodfinder/internal/config"
	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/pkg/e"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func nominatimFor(t *testing.T, h http.HandlerFunc) *Nominatim {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := config.GeocodeConfig{Endpoint: srv.URL + "/search", UserAgent: config.DefaultGeocodeUserAgent}
	return NewNominatim(cfg, srv.Client(), discard)
}

func TestNominatim_Success(t *testing.T) {
	n := nominatimFor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "123 Main St, Springfield", r.URL.Query().Get("q"))
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "realfoodfinder-app/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"lat":"39.7817","lon":"-89.6501","display_name":"Springfield"}]`)
	})

	got, err := n.Geocode(context.Background(), "123 Main St, Springfield")
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lat: 39.7817, Lng: -89.6501}, got)
}

func TestNominatim_NotFound(t *testing.T) {
	tests := []struct {
		name string
		h    http.HandlerFunc
	}{
		{"empty result", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, `[]`) }},
		{"upstream error", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) }},
		{"not json", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, `<html>`) }},
		{"unparsable lat", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `[{"lat":"north","lon":"0"}]`)
		}},
		{"out of range", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `[{"lat":"91","lon":"0"}]`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := nominatimFor(t, tt.h)
			_, err := n.Geocode(context.Background(), "nowhere at all")
			require.Error(t, err)
			assert.True(t, errors.Is(err, e.ErrGeocodeNotFound))
			msg, ok := e.PublicMessage(err)
			assert.True(t, ok)
			assert.Equal(t, NotFoundMessage, msg)
		})
	}
}

func TestNominatim_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	client := srv.Client()
	client.Timeout = 20 * time.Millisecond
	n := NewNominatim(config.GeocodeConfig{Endpoint: srv.URL, UserAgent: "test"}, client, discard)

	_, err := n.Geocode(context.Background(), "123 Main St")
	assert.True(t, errors.Is(err, e.ErrGeocodeNotFound))
}

func TestNew(t *testing.T) {
	g := New(config.GeocodeConfig{Provider: "static", StaticLat: 1, StaticLng: 2}, discard)
	got, err := g.Geocode(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lat: 1, Lng: 2}, got)

	_, ok := New(config.GeocodeConfig{Provider: "nominatim"}, discard).(*Nominatim)
	assert.True(t, ok)
}

type fakeCache struct {
	entries map[string]domain.Coordinates
	getErr  error
	setErr  error
	sets    int
}

func (f *fakeCache) Get(_ context.Context, address string) (domain.Coordinates, bool, error) {
	if f.getErr != nil {
		return domain.Coordinates{}, false, f.getErr
	}
	c, ok := f.entries[address]
	return c, ok, nil
}

func (f *fakeCache) Set(_ context.Context, address string, coords domain.Coordinates, _ time.Duration) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[address] = coords
	return nil
}

type countingGeocoder struct {
	calls int
	point domain.Coordinates
	err   error
}

func (c *countingGeocoder) Geocode(_ context.Context, _ string) (domain.Coordinates, error) {
	c.calls++
	return c.point, c.err
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	point := domain.Coordinates{Lat: 10, Lng: 20}

	t.Run("miss then hit", func(t *testing.T) {
		cache := &fakeCache{entries: map[string]domain.Coordinates{}}
		next := &countingGeocoder{point: point}
		g := NewCached(next, cache, time.Hour, discard)

		for i := 0; i < 2; i++ {
			got, err := g.Geocode(ctx, "1 Farm Rd")
			require.NoError(t, err)
			assert.Equal(t, point, got)
		}
		assert.Equal(t, 1, next.calls)
		assert.Equal(t, 1, cache.sets)
	})

	t.Run("failures are not cached", func(t *testing.T) {
		cache := &fakeCache{entries: map[string]domain.Coordinates{}}
		next := &countingGeocoder{err: notFound()}
		g := NewCached(next, cache, time.Hour, discard)

		_, err := g.Geocode(ctx, "nowhere")
		assert.True(t, errors.Is(err, e.ErrGeocodeNotFound))
		assert.Zero(t, cache.sets)
	})

	t.Run("cache errors are bypassed", func(t *testing.T) {
		cache := &fakeCache{entries: map[string]domain.Coordinates{}, getErr: errors.New("down"), setErr: errors.New("down")}
		next := &countingGeocoder{point: point}
		g := NewCached(next, cache, time.Hour, discard)

		got, err := g.Geocode(ctx, "1 Farm Rd")
		require.NoError(t, err)
		assert.Equal(t, point, got)
	})
}
