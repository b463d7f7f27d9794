package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/earcherc/realfoodfinder/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const geocodeKeyPrefix = "geocode:"

type GeocodeCache struct {
	client *goredis.Client
}

func NewGeocodeCache(r *Redis) *GeocodeCache {
	return &GeocodeCache{client: r.Client}
}

// Get returns ok=false on a cache miss.
func (c *GeocodeCache) Get(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	data, err := c.client.Get(ctx, GeocodeKey(address)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.Coordinates{}, false, nil
		}
		return domain.Coordinates{}, false, err
	}

	var coords domain.Coordinates
	if err := json.Unmarshal(data, &coords); err != nil {
		return domain.Coordinates{}, false, err
	}

	return coords, true, nil
}

func (c *GeocodeCache) Set(ctx context.Context, address string, coords domain.Coordinates, ttl time.Duration) error {
	b, err := json.Marshal(coords)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, GeocodeKey(address), b, ttl).Err()
}

// GeocodeKey folds case and whitespace so trivially different spellings of
// an address share one entry.
func GeocodeKey(address string) string {
	return geocodeKeyPrefix + strings.ToLower(strings.Join(strings.Fields(address), " "))
}
