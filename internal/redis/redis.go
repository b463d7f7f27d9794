package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/earcherc/realfoodfinder/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	connectTimeout = 5 * time.Second
	opTimeout      = 2 * time.Second
)

// Redis backs the geocode cache. Lookups are on the submission path, so
// every operation is short-bounded and a slow server turns into a cache miss.
type Redis struct {
	Client *redis.Client
	logger *slog.Logger
	addr   string
}

func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  connectTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})
	r := &Redis{Client: rdb, logger: logger, addr: cfg.Addr}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := r.Ping(ctx); err != nil {
		logger.Error("Failed to ping Redis", slog.String("addr", cfg.Addr), slog.String("error", err.Error()))
		_ = rdb.Close()
		return nil, err
	}
	logger.Info("Geocode cache connected",
		slog.String("addr", cfg.Addr),
		slog.Int("db", cfg.DB),
		slog.Duration("ttl", cfg.TTL),
	)

	return r, nil
}

// Ping backs the /ready check.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", r.addr, err)
	}
	return nil
}

func (r *Redis) Close() error {
	start := time.Now()
	err := r.Client.Close()
	r.logger.Info("Geocode cache closed",
		slog.String("addr", r.addr),
		slog.Duration("latency", time.Since(start)),
	)
	return err
}
