// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mverhaert/xbrld/internal/api"
	"github.com/mverhaert/xbrld/internal/config"
	"github.com/mverhaert/xbrld/internal/engine"
	"github.com/mverhaert/xbrld/internal/logging"
	"github.com/mverhaert/xbrld/internal/staging"
	"github.com/mverhaert/xbrld/internal/supervisor"
	"github.com/mverhaert/xbrld/internal/supervisor/services"
	"github.com/mverhaert/xbrld/internal/taxonomy"
	"github.com/mverhaert/xbrld/internal/validator"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("cache_dir", cfg.Cache.Dir).
		Bool("offline", cfg.Cache.Offline).
		Str("engine_command", cfg.Engine.Command).
		Msg("Starting xbrld")

	// An empty or missing cache is a degraded start, not a fatal one:
	// every taxonomy reference will surface as a cache-miss finding.
	resolver, err := taxonomy.NewResolver(cfg.Cache.Dir)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to resolve taxonomy cache root")
	}
	if !cfg.CacheDirExists() {
		logging.Warn().Str("cache_dir", cfg.Cache.Dir).
			Msg("Taxonomy cache directory missing; all schema references will fail to resolve")
	} else if entries, err := resolver.Inventory(); err != nil {
		logging.Warn().Err(err).Msg("Failed to inventory taxonomy cache")
	} else {
		logging.Info().Int("cached_documents", len(entries)).Msg("Taxonomy cache inventoried")
	}

	stager := staging.NewStager(cfg.Staging.Dir)

	arelle := engine.NewArelle(engine.ArelleConfig{
		Command:  cfg.Engine.Command,
		CacheDir: resolver.Root(),
		Offline:  cfg.Cache.Offline,
		Timeout:  cfg.Engine.Timeout,
		Plugins:  cfg.Engine.Plugins,
	}, stager)

	svc := validator.NewService(arelle, stager)

	router := api.NewRouter(api.NewHandler(svc, cfg.API.MaxBodyBytes), api.RouterConfig{
		MaxBodyBytes:      cfg.API.MaxBodyBytes,
		RateLimitRequests: cfg.API.RateLimitRequests,
		RateLimitWindow:   cfg.API.RateLimitWindow,
		RateLimitDisabled: cfg.API.RateLimitDisabled,
		CORSOrigins:       cfg.API.CORSOrigins,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	if err := <-errCh; err != nil && err != context.Canceled {
		logging.Error().Err(err).Msg("Supervisor tree exited with error")
		os.Exit(1)
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", fmt.Sprintf("%v", svc.Service)).
				Msg("Service did not stop within shutdown timeout")
		}
	}

	logging.Info().Msg("Shutdown complete")
}
