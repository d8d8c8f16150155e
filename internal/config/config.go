// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// It is immutable after Load and safe for concurrent reads.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Recommend RecommendConfig `koanf:"recommend"`
	Fuzzy     FuzzyConfig     `koanf:"fuzzy"`
	Insights  InsightsConfig  `koanf:"insights"`
	Cache     CacheConfig     `koanf:"cache"`
	API       APIConfig       `koanf:"api"`
	Reload    ReloadConfig    `koanf:"reload"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, production
}

// LoggingConfig mirrors logging.Config for the fields users may set.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DatasetConfig locates the catalog CSV and controls change detection.
type DatasetConfig struct {
	Path string `koanf:"path"`

	// Watch enables the fsnotify watcher that emits a dataset-change signal
	// when the file is rewritten.
	Watch bool `koanf:"watch"`

	// WatchDebounce collapses bursts of write events from editors and copy tools.
	WatchDebounce time.Duration `koanf:"watch_debounce"`

	// PollInterval, when positive, sends a dataset-change signal on a fixed
	// schedule. Unchanged content is a memo hit. Use it where fsnotify
	// events are unreliable, such as network filesystems.
	PollInterval time.Duration `koanf:"poll_interval"`
}

// RecommendConfig controls the similarity model and recommender.
type RecommendConfig struct {
	DefaultN int `koanf:"default_n"`
	MaxN     int `koanf:"max_n"`

	// MaxRows caps the dense R x R similarity matrix.
	MaxRows int `koanf:"max_rows"`

	// BuildWorkers is the number of goroutines computing similarity rows.
	// Zero means runtime.NumCPU().
	BuildWorkers int `koanf:"build_workers"`
}

// FuzzyConfig controls "did you mean" suggestions.
type FuzzyConfig struct {
	Cutoff float64 `koanf:"cutoff"`
	Limit  int     `koanf:"limit"`
}

// InsightsConfig selects the aggregate chart backend.
type InsightsConfig struct {
	Engine string `koanf:"engine"` // memory, duckdb
}

// CacheConfig controls the recommendation result cache.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	Backend string        `koanf:"backend"` // memory, badger
	TTL     time.Duration `koanf:"ttl"`
}

// APIConfig holds HTTP API limits.
type APIConfig struct {
	DefaultPageSize   int           `koanf:"default_page_size"`
	MaxPageSize       int           `koanf:"max_page_size"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	RequestTimeout    time.Duration `koanf:"request_timeout"`
}

// ReloadConfig controls how dataset-change signals turn into rebuilds.
type ReloadConfig struct {
	// MinInterval is the minimum spacing between two rebuilds.
	MinInterval time.Duration `koanf:"min_interval"`

	// FailureThreshold consecutive failed rebuilds open the circuit breaker.
	FailureThreshold uint32 `koanf:"failure_threshold"`

	// BreakerTimeout is how long the breaker stays open before a trial rebuild.
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// Address returns host:port for the HTTP listener.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Load reads configuration from the default locations.
func Load() (*Config, error) {
	return LoadWithKoanf("")
}
