// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cache

import (
	"fmt"
	"time"
)

// Cacher defines the interface for cache implementations.
//
// Usage:
//
//	c, err := cache.NewCacher(cache.Config{Backend: cache.BackendMemory, TTL: 10 * time.Minute})
//	c.Set("key", value)
//	if val, ok := c.Get("key"); ok {
//	    // Use cached value
//	}
type Cacher interface {
	// Get returns the value and true if found and not expired.
	Get(key string) ([]byte, bool)

	// Set stores a value with the default TTL.
	Set(key string, value []byte)

	// SetWithTTL stores a value with a custom TTL.
	SetWithTTL(key string, value []byte, ttl time.Duration)

	// Delete removes a value.
	Delete(key string)

	// Clear removes all entries.
	Clear()

	// GetStats returns cache statistics.
	GetStats() Stats

	// Close releases resources held by the backend.
	Close() error
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	TotalKeys int64 `json:"total_keys"`
}

// HitRate returns the hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Backend names a Cacher implementation.
type Backend string

const (
	// BackendMemory is the LRU + TTL map (default).
	BackendMemory Backend = "memory"

	// BackendBadger is BadgerDB in in-memory mode.
	BackendBadger Backend = "badger"
)

// Config holds configuration for creating a cache.
type Config struct {
	Backend Backend

	// TTL is the default time-to-live for entries.
	TTL time.Duration

	// Capacity bounds the memory backend. Default: 10000.
	Capacity int
}

// NewCacher creates a cache for cfg.
func NewCacher(cfg Config) (Cacher, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	switch cfg.Backend {
	case BackendBadger:
		return NewBadger(cfg.TTL)
	case BackendMemory, "":
		return NewLRU(cfg.Capacity, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Verify interface implementations at compile time
var (
	_ Cacher = (*LRU)(nil)
	_ Cacher = (*Badger)(nil)
)
