// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package watcher emits a dataset-change signal when the catalog CSV is
// written, created, or replaced on disk.
//
// The parent directory is watched rather than the file itself so editors
// and deploy tools that replace the file by rename keep being observed.
// Bursts of events (editors often write several times per save) collapse
// into a single callback after the debounce interval.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	Path     string
	Debounce time.Duration
}

// Watcher observes one file. It implements suture.Service.
type Watcher struct {
	path     string
	dir      string
	debounce time.Duration
	onChange func(path string)
	logger   zerolog.Logger

	mu      sync.Mutex
	running bool
}

// New creates a watcher for cfg.Path that calls onChange after each burst.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg Config, onChange func(path string), logger zerolog.Logger) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, errors.New("watcher: path is required")
	}
	if onChange == nil {
		return nil, errors.New("watcher: onChange is required")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("watcher: resolve %s: %w", cfg.Path, err)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		dir:      filepath.Dir(abs),
		debounce: cfg.Debounce,
		onChange: onChange,
		logger:   logger.With().Str("component", "watcher").Logger(),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Serve watches until ctx is done. A second concurrent call fails.
func (w *Watcher) Serve(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher: already running")
	}
	w.running = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: create: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watcher: add %s: %w", w.dir, err)
	}
	w.logger.Info().Str("path", w.path).Dur("debounce", w.debounce).Msg("watching dataset file")

	// fire is nil while no burst is pending.
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return errors.New("watcher: event channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().Str("op", event.Op.String()).Msg("dataset file event")
			fire = time.After(w.debounce)

		case <-fire:
			fire = nil
			w.onChange(w.path)

		case err, ok := <-fw.Errors:
			if !ok {
				return errors.New("watcher: error channel closed")
			}
			w.logger.Warn().Err(err).Msg("file watch error")
		}
	}
}

// String implements fmt.Stringer for suture logging.
func (w *Watcher) String() string {
	return "dataset-watcher"
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
