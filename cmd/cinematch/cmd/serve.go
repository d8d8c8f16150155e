// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/events"
	"github.com/tomtom215/cinematch/internal/insights"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/reload"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
	"github.com/tomtom215/cinematch/internal/watcher"
	ws "github.com/tomtom215/cinematch/internal/websocket"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load(false)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				select {
				case sig := <-sigCh:
					logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
					cancel()
				case <-ctx.Done():
				}
			}()

			return runServe(ctx, cfg)
		},
	}
}

// runServe loads the dataset, assembles the supervisor tree and blocks until
// ctx is canceled. A dataset that fails to load at startup is fatal.
//
//nolint:gocyclo // sequential wiring
func runServe(ctx context.Context, cfg *config.Config) error {
	logging.Info().
		Str("dataset", cfg.Dataset.Path).
		Str("addr", cfg.Server.Address()).
		Str("insights_engine", cfg.Insights.Engine).
		Str("cache_backend", cfg.Cache.Backend).
		Bool("watch", cfg.Dataset.Watch).
		Dur("poll_interval", cfg.Dataset.PollInterval).
		Msg("Starting cinematch with supervisor tree")

	engine, resultCache, err := newEngine(cfg)
	if err != nil {
		return err
	}
	if resultCache != nil {
		defer func() {
			if err := resultCache.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing result cache")
			}
		}()
	}

	agg, err := insights.New(cfg.Insights.Engine)
	if err != nil {
		return fmt.Errorf("insights engine: %w", err)
	}
	defer func() {
		if err := agg.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing insights engine")
		}
	}()
	engine.OnModelChange(func(ctx context.Context, _, cur *recommend.Model) {
		if err := agg.Refresh(ctx, cur.Dataset()); err != nil {
			logging.Error().Err(err).Str("engine", agg.Name()).Msg("Insights refresh failed")
		}
	})

	if _, _, err := engine.LoadFile(ctx, cfg.Dataset.Path); err != nil {
		return fmt.Errorf("initial dataset load: %w", err)
	}

	bus, err := events.NewBus(events.DefaultConfig())
	if err != nil {
		return err
	}
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	reloadSvc, err := reload.New(reload.Config{
		Path:             cfg.Dataset.Path,
		MinInterval:      cfg.Reload.MinInterval,
		FailureThreshold: cfg.Reload.FailureThreshold,
		BreakerTimeout:   cfg.Reload.BreakerTimeout,
	}, engine, bus, logging.Logger())
	if err != nil {
		return err
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	// Model layer
	tree.AddModelService(reloadSvc)
	if cfg.Dataset.Watch {
		w, err := watcher.New(watcher.Config{
			Path:     cfg.Dataset.Path,
			Debounce: cfg.Dataset.WatchDebounce,
		}, func(string) {
			if _, err := reloadSvc.Trigger(events.SourceWatcher); err != nil {
				logging.Warn().Err(err).Msg("Dataset change signal failed")
			}
		}, logging.Logger())
		if err != nil {
			return err
		}
		tree.AddModelService(w)
		logging.Info().Str("path", w.Path()).Msg("Dataset watcher added to supervisor tree")
	}
	if cfg.Dataset.PollInterval > 0 {
		poller, err := services.NewPollService(reloadSvc, cfg.Dataset.PollInterval, logging.Logger())
		if err != nil {
			return err
		}
		tree.AddModelService(poller)
	}

	// Messaging layer
	hub := ws.NewHub()
	tree.AddMessagingService(hub)
	tree.AddMessagingService(ws.NewForwarder(hub, bus))

	// API layer
	handler := api.NewHandler(engine, agg, reloadSvc, hub, cfg)
	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           api.NewRouter(handler, cfg).SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}
	logging.Info().Msg("Application stopped gracefully")
	return nil
}
