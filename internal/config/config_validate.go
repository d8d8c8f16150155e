// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"strings"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateDataset,
		c.validateRecommend,
		c.validateFuzzy,
		c.validateInsights,
		c.validateCache,
		c.validateAPI,
		c.validateReload,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateDataset() error {
	if strings.TrimSpace(c.Dataset.Path) == "" {
		return fmt.Errorf("DATASET_PATH is required")
	}
	if c.Dataset.Watch && c.Dataset.WatchDebounce < 0 {
		return fmt.Errorf("DATASET_WATCH_DEBOUNCE must not be negative")
	}
	if c.Dataset.PollInterval < 0 {
		return fmt.Errorf("DATASET_POLL_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.DefaultN < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_N must be at least 1")
	}
	if r.MaxN < r.DefaultN {
		return fmt.Errorf("RECOMMEND_MAX_N (%d) must be >= RECOMMEND_DEFAULT_N (%d)", r.MaxN, r.DefaultN)
	}
	if r.MaxRows < 2 {
		return fmt.Errorf("RECOMMEND_MAX_ROWS must be at least 2")
	}
	if r.BuildWorkers < 0 {
		return fmt.Errorf("RECOMMEND_BUILD_WORKERS must not be negative")
	}
	return nil
}

func (c *Config) validateFuzzy() error {
	if c.Fuzzy.Cutoff < 0 || c.Fuzzy.Cutoff > 1 {
		return fmt.Errorf("FUZZY_CUTOFF must be within [0, 1], got %v", c.Fuzzy.Cutoff)
	}
	if c.Fuzzy.Limit < 1 {
		return fmt.Errorf("FUZZY_LIMIT must be at least 1")
	}
	return nil
}

func (c *Config) validateInsights() error {
	switch c.Insights.Engine {
	case "memory", "duckdb":
		return nil
	default:
		return fmt.Errorf("INSIGHTS_ENGINE must be one of: memory, duckdb")
	}
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	switch c.Cache.Backend {
	case "memory", "badger":
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, badger")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when the cache is enabled")
	}
	return nil
}

func (c *Config) validateAPI() error {
	a := c.API
	if a.DefaultPageSize < 1 || a.MaxPageSize < a.DefaultPageSize {
		return fmt.Errorf("API page sizes invalid: default=%d max=%d", a.DefaultPageSize, a.MaxPageSize)
	}
	if !a.RateLimitDisabled {
		if a.RateLimitRequests < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
		}
		if a.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	return nil
}

func (c *Config) validateReload() error {
	if c.Reload.MinInterval < 0 {
		return fmt.Errorf("RELOAD_MIN_INTERVAL must not be negative")
	}
	if c.Reload.FailureThreshold < 1 {
		return fmt.Errorf("RELOAD_FAILURE_THRESHOLD must be at least 1")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}
