// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cmd

import (
	"context"
	"fmt"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// engineConfig maps the application config onto the engine's own.
func engineConfig(cfg *config.Config) *recommend.Config {
	rc := recommend.DefaultConfig()
	rc.Limits.DefaultN = cfg.Recommend.DefaultN
	rc.Limits.MaxN = cfg.Recommend.MaxN
	rc.Limits.MaxRows = cfg.Recommend.MaxRows
	rc.BuildWorkers = cfg.Recommend.BuildWorkers
	rc.Fuzzy.Cutoff = cfg.Fuzzy.Cutoff
	rc.Fuzzy.Limit = cfg.Fuzzy.Limit
	rc.Cache.Enabled = cfg.Cache.Enabled
	rc.Cache.TTL = cfg.Cache.TTL
	return rc
}

// newEngine creates an engine with the configured result cache. The
// returned cacher is nil when caching is disabled; the caller closes it.
func newEngine(cfg *config.Config) (*recommend.Engine, cache.Cacher, error) {
	engine, err := recommend.NewEngine(engineConfig(cfg), logging.Logger())
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Cache.Enabled {
		return engine, nil, nil
	}
	c, err := cache.NewCacher(cache.Config{
		Backend: cache.Backend(cfg.Cache.Backend),
		TTL:     cfg.Cache.TTL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s cache: %w", cfg.Cache.Backend, err)
	}
	engine.SetCache(c)
	return engine, c, nil
}

// loadEngine builds an engine and its first model from cfg.Dataset.Path.
func loadEngine(ctx context.Context, cfg *config.Config) (*recommend.Engine, func(), error) {
	engine, c, err := newEngine(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if c != nil {
			if err := c.Close(); err != nil {
				logging.Warn().Err(err).Msg("error closing result cache")
			}
		}
	}
	if _, _, err := engine.LoadFile(ctx, cfg.Dataset.Path); err != nil {
		cleanup()
		return nil, nil, err
	}
	return engine, cleanup, nil
}
