package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/earcherc/realfoodfinder/internal/api"
	"github.com/earcherc/realfoodfinder/internal/api/handlers/http/system"
	"github.com/earcherc/realfoodfinder/internal/captcha"
	"github.com/earcherc/realfoodfinder/internal/config"
	"github.com/earcherc/realfoodfinder/internal/feedback"
	"github.com/earcherc/realfoodfinder/internal/geocode"
	"github.com/earcherc/realfoodfinder/internal/redis"
	"github.com/earcherc/realfoodfinder/internal/render"
	"github.com/earcherc/realfoodfinder/internal/service"
	"github.com/earcherc/realfoodfinder/internal/storage/memory"
	"github.com/earcherc/realfoodfinder/internal/storage/postgres"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres // nil when running on the in-memory store
	Redis      *redis.Redis       // nil when REDIS_ADDR is unset
}

type stores struct {
	locations service.LocationRepository
	links     service.LinkRepository
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	c := &Components{logger: logger}
	checks := map[string]system.Check{}

	st, err := c.initStorage(ctx, cfg, checks)
	if err != nil {
		return nil, err
	}

	var geocoder service.Geocoder = geocode.New(cfg.Geocode, logger)
	if cfg.Redis.Addr != "" {
		logger.Info("Initializing Redis")
		redisClient, err := redis.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			c.ShutdownAll()
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		c.Redis = redisClient
		checks["redis"] = redisClient.Ping
		geocoder = geocode.NewCached(geocoder, redis.NewGeocodeCache(redisClient), cfg.Redis.TTL, logger)
	}

	if cfg.AdminKey == "" {
		logger.Warn("ADMIN_DASHBOARD_KEY is empty: the moderation dashboard is open to anyone")
	}

	forwarder := feedback.NewForwarder(logger, cfg.Feedback)
	if !forwarder.Enabled() {
		logger.Info("feedback forwarding disabled: GITHUB_FEEDBACK_* is not set")
	}

	srv := service.NewService(
		service.NewSubmissionService(st.locations, st.links, captcha.New(cfg.Turnstile, cfg.IsProduction(), logger), geocoder, logger),
		service.NewCatalogService(st.locations, st.links),
		service.NewModerationService(st.locations, st.links, cfg.AdminKey, logger),
		service.NewFeedbackService(forwarder),
	)

	renderer, err := render.NewRenderer()
	if err != nil {
		c.ShutdownAll()
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	c.HttpServer = api.NewServer(cfg, logger, srv, renderer, checks)
	logger.Info("Initialized server")

	return c, nil
}

func (c *Components) initStorage(ctx context.Context, cfg *config.Config, checks map[string]system.Check) (stores, error) {
	logger := c.logger

	if cfg.Postgres.URL == "" {
		logger.Warn("DATABASE_URL is empty: using the in-memory store, data is lost on restart")
		return stores{
			locations: memory.NewLocationStore(memory.DefaultLocationSeed()),
			links:     memory.NewLinkStore(memory.DefaultLinkSeed()),
		}, nil
	}

	logger.Info("Initializing Postgres")
	storage, err := postgres.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Error("Failed to init postgres",
			slog.Any("error", err),
		)
		return stores{}, fmt.Errorf("failed to init postgres: %w", err)
	}
	c.Postgres = storage

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, storage.Pool, logger); err != nil {
			storage.Close()
			return stores{}, fmt.Errorf("failed to migrate postgres: %w", err)
		}
	}

	checks["postgres"] = func(ctx context.Context) error {
		return storage.Pool.Ping(ctx)
	}

	return stores{locations: storage.Locations, links: storage.Links}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("shutting down components")

	if c.Postgres != nil {
		pgStart := time.Now()
		c.Postgres.Close()
		c.logger.Info("Postgres pool closed", slog.Duration("latency", time.Since(pgStart)))
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("all components stopped",
		slog.Duration("latency", time.Since(start)))
}
