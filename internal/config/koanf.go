// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when no explicit path is given.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinematch/config.yaml",
	"/etc/cinematch/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultYearFrom is the dashboard's default lower bound for the release
// year filter.
const DefaultYearFrom = 2000

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Dataset: DatasetConfig{
			Path:          "netflix_titles.csv",
			Watch:         false,
			WatchDebounce: 500 * time.Millisecond,
		},
		Recommend: RecommendConfig{
			DefaultN: 5,
			MaxN:     50,
			MaxRows:  20000,
		},
		Fuzzy: FuzzyConfig{
			Cutoff: 0.6,
			Limit:  5,
		},
		Insights: InsightsConfig{
			Engine: "memory",
		},
		Cache: CacheConfig{
			Enabled: true,
			Backend: "memory",
			TTL:     10 * time.Minute,
		},
		API: APIConfig{
			DefaultPageSize:   50,
			MaxPageSize:       500,
			CORSOrigins:       []string{},
			RateLimitRequests: 300,
			RateLimitWindow:   time.Minute,
			RequestTimeout:    10 * time.Second,
		},
		Reload: ReloadConfig{
			MinInterval:      2 * time.Second,
			FailureThreshold: 3,
			BreakerTimeout:   30 * time.Second,
		},
	}
}

// LoadWithKoanf layers defaults, the YAML file at path (or the first file
// found by findConfigFile when path is empty) and environment variables,
// then validates the result.
func LoadWithKoanf(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths arrive from the environment as comma-separated strings.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok || raw == "" {
			continue
		}
		parts := strings.Split(raw, ",")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				values = append(values, p)
			}
		}
		if err := k.Set(path, values); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	"http_port":                "server.port",
	"http_host":                "server.host",
	"http_timeout":             "server.timeout",
	"http_shutdown_timeout":    "server.shutdown_timeout",
	"environment":              "server.environment",
	"log_level":                "logging.level",
	"log_format":               "logging.format",
	"log_caller":               "logging.caller",
	"dataset_path":             "dataset.path",
	"dataset_watch":            "dataset.watch",
	"dataset_watch_debounce":   "dataset.watch_debounce",
	"dataset_poll_interval":    "dataset.poll_interval",
	"recommend_default_n":      "recommend.default_n",
	"recommend_max_n":          "recommend.max_n",
	"recommend_max_rows":       "recommend.max_rows",
	"recommend_build_workers":  "recommend.build_workers",
	"fuzzy_cutoff":             "fuzzy.cutoff",
	"fuzzy_limit":              "fuzzy.limit",
	"insights_engine":          "insights.engine",
	"cache_enabled":            "cache.enabled",
	"cache_backend":            "cache.backend",
	"cache_ttl":                "cache.ttl",
	"api_default_page_size":    "api.default_page_size",
	"api_max_page_size":        "api.max_page_size",
	"cors_origins":             "api.cors_origins",
	"rate_limit_requests":      "api.rate_limit_requests",
	"rate_limit_window":        "api.rate_limit_window",
	"disable_rate_limit":       "api.rate_limit_disabled",
	"api_request_timeout":      "api.request_timeout",
	"reload_min_interval":      "reload.min_interval",
	"reload_failure_threshold": "reload.failure_threshold",
	"reload_breaker_timeout":   "reload.breaker_timeout",
}

// envTransformFunc maps DATASET_PATH to dataset.path and so on. Unknown
// variables map to "" and are dropped by koanf.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
