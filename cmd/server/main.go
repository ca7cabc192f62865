// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

// Package main is the entry point for the Woody recommendation server.
//
// Woody serves personalized Disney World trip-planning recommendations:
// it scores a catalog of attractions, dining, shows, and events against
// stored or inline guest preferences, adjusted for situational context
// (current park, time of day, weather).
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered load from defaults, config file, and
//     environment variables (Koanf v2)
//  2. Catalog store: BadgerDB-backed item and preference storage,
//     seeded with a starter catalog on first run
//  3. Recommendation engine: weighted scorer with response caching
//  4. HTTP server: chi-routed REST API with Prometheus metrics
//  5. Supervisor tree: suture-managed lifecycles with failure isolation
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (HTTP_PORT, STORAGE_PATH, LOG_LEVEL, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (shutdown_timeout)
//   - Closes the catalog store
//
// # Example Usage
//
// Development with console logs:
//
//	export LOG_LEVEL=debug
//	export LOG_FORMAT=console
//	export STORAGE_PATH=./data
//	./woody
//
// Production:
//
//	export HTTP_PORT=8315
//	export STORAGE_PATH=/data/woody
//	export CORS_ORIGINS=https://planner.example.com
//	./woody
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/api"
	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/catalog"
	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/config"
	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/logging"
	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/metrics"
	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/middleware"
	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/recommend"
	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/supervisor"
	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config not available yet; the default logger has to do.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("storage_path", cfg.Storage.Path).
		Msg("Starting Woody recommendation service")

	store, err := catalog.Open(cfg.Storage.Path, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open catalog store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog store")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seeded, err := store.SeedIfEmpty(ctx, cfg.Storage.SeedFile)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to seed catalog")
	}
	if seeded > 0 {
		logging.Info().Int("items", seeded).Msg("Catalog seeded")
	}
	if count, err := store.CountItems(ctx); err == nil {
		metrics.SetCatalogItems(count)
		logging.Info().Int("items", count).Msg("Catalog store ready")
	}

	engine, err := recommend.NewEngine(cfg.Recommend, store, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	if cfg.API.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	perfMon := middleware.NewPerformanceMonitor(1000)
	handler := api.NewHandler(engine, store, perfMon, logging.Logger())
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.API))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// sutureslog wants slog; bridge it onto zerolog.
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewCatalogGCService(
		store,
		cfg.Storage.GCInterval,
		cfg.Storage.GCDiscardRatio,
		logging.Logger(),
	))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor closes the channel.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
