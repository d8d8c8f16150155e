// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"strings"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaultConfig().Validate() = %v", err)
	}
	if cfg.Recommend.DefaultN != 5 {
		t.Errorf("Recommend.DefaultN = %d, want 5", cfg.Recommend.DefaultN)
	}
	if cfg.Fuzzy.Cutoff != 0.6 || cfg.Fuzzy.Limit != 5 {
		t.Errorf("Fuzzy = %+v, want cutoff 0.6 limit 5", cfg.Fuzzy)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"empty dataset", func(c *Config) { c.Dataset.Path = " " }, "DATASET_PATH"},
		{"zero default n", func(c *Config) { c.Recommend.DefaultN = 0 }, "RECOMMEND_DEFAULT_N"},
		{"max n below default", func(c *Config) { c.Recommend.MaxN = 2 }, "RECOMMEND_MAX_N"},
		{"tiny max rows", func(c *Config) { c.Recommend.MaxRows = 1 }, "RECOMMEND_MAX_ROWS"},
		{"cutoff above one", func(c *Config) { c.Fuzzy.Cutoff = 1.5 }, "FUZZY_CUTOFF"},
		{"zero fuzzy limit", func(c *Config) { c.Fuzzy.Limit = 0 }, "FUZZY_LIMIT"},
		{"unknown insights engine", func(c *Config) { c.Insights.Engine = "sqlite" }, "INSIGHTS_ENGINE"},
		{"unknown cache backend", func(c *Config) { c.Cache.Backend = "redis" }, "CACHE_BACKEND"},
		{"zero cache ttl", func(c *Config) { c.Cache.TTL = 0 }, "CACHE_TTL"},
		{"disabled cache skips checks", func(c *Config) { c.Cache.Enabled = false; c.Cache.Backend = "redis" }, ""},
		{"zero rate limit", func(c *Config) { c.API.RateLimitRequests = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled", func(c *Config) { c.API.RateLimitDisabled = true; c.API.RateLimitRequests = 0 }, ""},
		{"zero failure threshold", func(c *Config) { c.Reload.FailureThreshold = 0 }, "RELOAD_FAILURE_THRESHOLD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error mentioning %s", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddress(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 9000}
	if got := s.Address(); got != "127.0.0.1:9000" {
		t.Errorf("Address() = %q, want 127.0.0.1:9000", got)
	}
}
