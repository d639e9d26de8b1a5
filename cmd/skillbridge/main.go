// main is the entry point of the SkillBridge students service.
//
// Startup sequence:
//  1. Load configuration (YAML file + env overrides)
//  2. Initialise the logger
//  3. Open the configured storage backend and apply migrations
//  4. Build the router
//  5. Serve HTTP until SIGINT/SIGTERM, then shut down gracefully
//
// Running the server:
//
//	go run ./cmd/skillbridge --config=config/local.yaml
//
// or
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/skillbridge
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/aanand-mishra/skillbridge/internal/config"
	"github.com/aanand-mishra/skillbridge/internal/http/router"
	"github.com/aanand-mishra/skillbridge/internal/logger"
	"github.com/aanand-mishra/skillbridge/internal/service"
	"github.com/aanand-mishra/skillbridge/internal/storage"
	"github.com/aanand-mishra/skillbridge/internal/storage/postgres"
	"github.com/aanand-mishra/skillbridge/internal/storage/sqlite"
)

const version = "1.0.0"

func main() {
	cfg := config.MustLoad()

	log := logger.New(cfg.Env, "server")
	log.Info().
		Str("env", cfg.Env).
		Str("version", version).
		Msg("starting skillbridge")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg.Storage, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialise storage")
		os.Exit(1)
	}
	defer store.Close()

	log.Info().Str("driver", cfg.Storage.Driver).Msg("storage initialised")

	handler, err := router.New(service.NewStudentService(store), store, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to build router")
		os.Exit(1)
	}

	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", cfg.HTTPServer.Addr).Msg("server started")

		// ErrServerClosed is the normal result of Shutdown.
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		log.Error().Err(err).Msg("server encountered an error")
		store.Close()
		os.Exit(1)
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received, stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown server gracefully")
		return
	}

	log.Info().Msg("server stopped gracefully")
}

// openStorage returns the backend named by cfg.Driver.
func openStorage(ctx context.Context, cfg config.Storage, log *logger.Logger) (storage.Storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.DSN); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create storage dir: %w", err)
			}
		}
		s, err := sqlite.New(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		p, err := postgres.New(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
