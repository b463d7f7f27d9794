package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/earcherc/realfoodfinder/internal/api/handlers/http/admin"
	"github.com/earcherc/realfoodfinder/internal/api/handlers/http/public"
	"github.com/earcherc/realfoodfinder/internal/api/handlers/http/system"
	"github.com/earcherc/realfoodfinder/internal/config"
	"github.com/earcherc/realfoodfinder/internal/middleware"
	"github.com/earcherc/realfoodfinder/internal/render"
	"github.com/earcherc/realfoodfinder/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, renderer *render.Renderer, checks map[string]system.Check) *Server {
	adminHandler := admin.NewHandler(logger, svc.ModerationService, renderer)
	publicHandler := public.NewHandler(logger, svc.SubmissionService, svc.CatalogService, svc.FeedbackService)
	systemHandler := system.NewHandler(logger, checks)

	r := InitRouter(adminHandler, publicHandler, systemHandler, cfg.Http, os.Stdout, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

// InitRouter wires the routes. accessLog receives one line per request with
// the admin key masked.
func InitRouter(adminHandler *admin.Handler, publicHandler *public.Handler, systemHandler *system.Handler, httpCfg config.HttpConfig, accessLog io.Writer, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	if httpCfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog(accessLog, "key"))
	r.Use(middleware.MaxBytes(middleware.MaxBodyBytes))

	limiterKey := middleware.LimiterKey(httpCfg.TrustProxyHeaders)

	r.Route("/api", func(api chi.Router) {
		api.Group(func(read chi.Router) {
			read.Use(middleware.Limit(20, 40, 5*time.Minute, limiterKey, logger))
			read.Get("/locations", publicHandler.ListLocations)
			read.Get("/links", publicHandler.ListLinks)
		})

		api.Group(func(write chi.Router) {
			write.Use(middleware.Limit(0.2, 5, 30*time.Minute, limiterKey, logger))
			write.Post("/locations", publicHandler.SubmitLocation)
			write.Post("/links", publicHandler.SubmitLink)
			write.Post("/feedback", publicHandler.SubmitFeedback)
		})
	})

	r.Route("/admin", func(ar chi.Router) {
		ar.Use(middleware.Limit(2, 10, 10*time.Minute, limiterKey, logger))
		ar.Get("/", adminHandler.AdminDashboard)
		ar.Post("/locations/status", adminHandler.AdminLocationStatus)
		ar.Post("/links/status", adminHandler.AdminLinkStatus)
	})

	r.Get("/health", systemHandler.SystemHealth)
	r.Get("/ready", systemHandler.SystemReady)

	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
