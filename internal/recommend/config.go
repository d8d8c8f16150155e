// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/cinematch/internal/fuzzy"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Fuzzy controls "did you mean" suggestions.
	Fuzzy FuzzyConfig `json:"fuzzy"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`

	// BuildWorkers is the number of goroutines filling the similarity
	// matrix. Zero means runtime.NumCPU().
	BuildWorkers int `json:"build_workers"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultN is used when a request asks for n <= 0.
	DefaultN int `json:"default_n"`

	// MaxN caps n.
	MaxN int `json:"max_n"`

	// MaxRows caps the catalog size. The similarity matrix is dense, so
	// memory grows with MaxRows squared.
	MaxRows int `json:"max_rows"`
}

// FuzzyConfig mirrors fuzzy.Config.
type FuzzyConfig struct {
	Cutoff float64 `json:"cutoff"`
	Limit  int     `json:"limit"`
}

// CacheConfig contains result caching parameters.
type CacheConfig struct {
	// Enabled turns result caching on or off.
	Enabled bool `json:"enabled"`

	// TTL is how long a cached result stays valid.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultN: 5,
			MaxN:     50,
			MaxRows:  20000,
		},
		Fuzzy: FuzzyConfig{
			Cutoff: fuzzy.DefaultCutoff,
			Limit:  fuzzy.DefaultLimit,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultN < 1 {
		return fmt.Errorf("limits.default_n must be at least 1, got %d", c.Limits.DefaultN)
	}
	if c.Limits.MaxN < c.Limits.DefaultN {
		return fmt.Errorf("limits.max_n (%d) must be >= limits.default_n (%d)", c.Limits.MaxN, c.Limits.DefaultN)
	}
	if c.Limits.MaxRows < 2 {
		return fmt.Errorf("limits.max_rows must be at least 2, got %d", c.Limits.MaxRows)
	}
	if c.Fuzzy.Cutoff < 0 || c.Fuzzy.Cutoff > 1 {
		return fmt.Errorf("fuzzy.cutoff must be within [0, 1], got %f", c.Fuzzy.Cutoff)
	}
	if c.Fuzzy.Limit < 0 {
		return fmt.Errorf("fuzzy.limit must be non-negative, got %d", c.Fuzzy.Limit)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when caching is enabled")
	}
	if c.BuildWorkers < 0 {
		return fmt.Errorf("build_workers must be non-negative, got %d", c.BuildWorkers)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
