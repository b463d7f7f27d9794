package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/earcherc/realfoodfinder/internal/components"
	"github.com/earcherc/realfoodfinder/internal/config"
	"github.com/earcherc/realfoodfinder/internal/storage/postgres"
)

var rootCmd = &cobra.Command{
	Use:   "realfoodfinder",
	Short: "Community directory of real-food sources",
	Long: `realfoodfinder serves the public directory API and the moderation
dashboard. Without a subcommand it starts the HTTP server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return migrate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func Run() error {
	return rootCmd.ExecuteContext(context.Background())
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config failed:", err)
		return err
	}
	logger := components.SetupLogger(cfg.Env)

	comps, err := components.InitComponents(ctx, cfg, logger)
	if err != nil {
		logger.Error("could not init components", "err", err)
		return err
	}

	quitChan := make(chan os.Signal, 1)
	signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quitChan)

	serveErr := runUntilSignal(ctx, comps.HttpServer.Run, quitChan, logger)

	logger.Info("shutting down the services...")
	comps.ShutdownAll()
	if serveErr != nil {
		return fmt.Errorf("http server: %w", serveErr)
	}
	logger.Info("gracefully shut down")

	return nil
}

// runUntilSignal runs the server until a signal arrives or the server stops
// by itself, and returns the server's error.
func runUntilSignal(ctx context.Context, run func(context.Context) error, quit <-chan os.Signal, logger *slog.Logger) error {
	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	var (
		wg       sync.WaitGroup
		serveErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := run(runCtx); err != nil {
			logger.Error("http server failed", "err", err)
			serveErr = err
			stop()
		}
		logger.Info("http server stopped")
	}()

	select {
	case sig := <-quit:
		logger.Info("captured signal, initiating shutdown", "signal", sig.String())
	case <-runCtx.Done():
	}
	stop()

	wg.Wait()
	return serveErr
}

func migrate(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return errors.New("DATABASE_URL is empty")
	}
	logger := components.SetupLogger(cfg.Env)

	storage, err := postgres.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	return postgres.Migrate(ctx, storage.Pool, logger)
}
