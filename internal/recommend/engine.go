// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/fuzzy"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// ResultCache stores encoded recommendation lists. internal/cache provides
// in-memory and BadgerDB implementations.
type ResultCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Clear()
}

// ModelObserver is notified after a new model has been swapped in.
type ModelObserver func(ctx context.Context, previous, current *Model)

// Engine serves recommendations from the current Model. Models are built
// once per dataset content hash and published atomically, so queries never
// block on a rebuild. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	current atomic.Pointer[Model]
	buildMu sync.Mutex
	version atomic.Int64

	cache     ResultCache
	observers []ModelObserver
	obsMu     sync.RWMutex

	requestCount atomic.Int64
	notFound     atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	builds       atomic.Int64
	memoHits     atomic.Int64
}

// NewEngine creates an engine with no model. Call Build or LoadFile before
// serving queries.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// SetCache installs the result cache. A nil cache disables caching.
func (e *Engine) SetCache(c ResultCache) {
	e.cache = c
}

// OnModelChange registers fn to run after every model swap.
func (e *Engine) OnModelChange(fn ModelObserver) {
	e.obsMu.Lock()
	defer e.obsMu.Unlock()
	e.observers = append(e.observers, fn)
}

// LoadFile loads the CSV at path and builds a model for it unless the
// current model already has the same content hash. It reports whether a
// new model was swapped in.
func (e *Engine) LoadFile(ctx context.Context, path string) (*Model, bool, error) {
	start := time.Now()
	ds, err := catalog.Load(path)
	if err != nil {
		metrics.RecordModelFailed()
		return nil, false, err
	}
	metrics.RecordBuildPhase("load", time.Since(start))

	e.logger.Info().
		Str("path", path).
		Int("rows", ds.Len()).
		Int("skipped", len(ds.Report().SkippedRows)).
		Str("hash", shortHash(ds.Hash())).
		Msg("dataset loaded")

	return e.Build(ctx, ds)
}

// Build publishes a model for ds. If the current model was built from a
// dataset with the same hash it is returned unchanged. Builds are
// serialized; on failure the current model keeps serving.
func (e *Engine) Build(ctx context.Context, ds *catalog.Dataset) (*Model, bool, error) {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	prev := e.current.Load()
	if prev != nil && prev.dataset.Hash() == ds.Hash() {
		e.memoHits.Add(1)
		metrics.RecordModelUnchanged()
		e.logger.Debug().Str("hash", shortHash(ds.Hash())).Msg("dataset unchanged, keeping model")
		return prev, false, nil
	}

	m, err := BuildModel(ctx, ds, e.config)
	if err != nil {
		metrics.RecordModelFailed()
		e.logger.Error().Err(err).Int("rows", ds.Len()).Msg("model build failed")
		return nil, false, fmt.Errorf("build model: %w", err)
	}

	m.version = e.version.Add(1)
	e.current.Store(m)
	e.builds.Add(1)
	if e.cache != nil {
		e.cache.Clear()
	}

	st := m.Status()
	metrics.RecordModelBuilt(m.version, st.Rows, st.VocabularySize)
	e.logger.Info().
		Int64("version", m.version).
		Int("rows", st.Rows).
		Int("vocabulary", st.VocabularySize).
		Int64("duration_ms", st.BuildMS).
		Str("hash", shortHash(st.DatasetHash)).
		Msg("model built")

	e.notify(ctx, prev, m)
	return m, true, nil
}

func (e *Engine) notify(ctx context.Context, prev, cur *Model) {
	e.obsMu.RLock()
	observers := e.observers
	e.obsMu.RUnlock()
	for _, fn := range observers {
		fn(ctx, prev, cur)
	}
}

// Model returns the model being served, or nil before the first build.
func (e *Engine) Model() *Model {
	return e.current.Load()
}

// Catalog returns the served rows in file order.
func (e *Engine) Catalog() ([]catalog.Item, error) {
	m := e.current.Load()
	if m == nil {
		return nil, ErrNoModel
	}
	return m.dataset.Items(), nil
}

// Lookup returns the first row titled title.
func (e *Engine) Lookup(title string) (catalog.Item, bool, error) {
	m := e.current.Load()
	if m == nil {
		return catalog.Item{}, false, ErrNoModel
	}
	idx, ok := m.IndexOf(title)
	if !ok {
		return catalog.Item{}, false, nil
	}
	return m.dataset.Item(idx), true, nil
}

// Recommend returns up to n rows most similar to title, best first. An
// unknown title yields an empty slice and a nil error. n <= 0 selects
// Limits.DefaultN and n above Limits.MaxN is clamped.
func (e *Engine) Recommend(ctx context.Context, title string, n int) ([]Recommendation, error) {
	e.requestCount.Add(1)
	m := e.current.Load()
	if m == nil {
		return nil, ErrNoModel
	}
	n = e.NormalizeN(n)

	idx, ok := m.IndexOf(title)
	if !ok {
		e.notFound.Add(1)
		metrics.RecordRecommend(false)
		return []Recommendation{}, nil
	}

	key := cacheKey(m, title, n)
	if recs, hit := e.fromCache(key); hit {
		metrics.RecordRecommend(true)
		return recs, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recs := m.Neighbors(idx, n)
	e.toCache(key, recs)
	metrics.RecordRecommend(true)

	e.logger.Debug().
		Str("title", title).
		Int("index", idx).
		Int("n", n).
		Int("returned", len(recs)).
		Msg("recommendation complete")
	return recs, nil
}

// Suggest returns close title matches for a query without an exact match.
func (e *Engine) Suggest(query string) ([]string, error) {
	m := e.current.Load()
	if m == nil {
		return nil, ErrNoModel
	}
	out := m.Suggest(query)
	metrics.RecordSuggest(len(out))
	return out, nil
}

// SuggestScored is Suggest with sequence ratios.
func (e *Engine) SuggestScored(query string) ([]fuzzy.Match, error) {
	m := e.current.Load()
	if m == nil {
		return nil, ErrNoModel
	}
	out := m.SuggestScored(query)
	metrics.RecordSuggest(len(out))
	return out, nil
}

// Status describes the served model.
func (e *Engine) Status() Status {
	m := e.current.Load()
	if m == nil {
		return Status{}
	}
	return m.Status()
}

// GetMetrics returns the engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount: e.requestCount.Load(),
		NotFound:     e.notFound.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
		Builds:       e.builds.Load(),
		MemoHits:     e.memoHits.Load(),
	}
}

// GetConfig returns a copy of the configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// NormalizeN maps a requested result count to the count Recommend uses.
func (e *Engine) NormalizeN(n int) int {
	if n <= 0 {
		n = e.config.Limits.DefaultN
	}
	if n > e.config.Limits.MaxN {
		n = e.config.Limits.MaxN
	}
	return n
}

// cacheKey includes the dataset hash so a rebuilt model never reads a
// previous model's entries.
func cacheKey(m *Model, title string, n int) string {
	return "rec:" + m.dataset.Hash() + ":" + strconv.Itoa(n) + ":" + title
}

func (e *Engine) fromCache(key string) ([]Recommendation, bool) {
	if e.cache == nil || !e.config.Cache.Enabled {
		return nil, false
	}
	raw, ok := e.cache.Get(key)
	if !ok {
		e.cacheMisses.Add(1)
		metrics.RecordCacheLookup("recommend", false)
		return nil, false
	}
	var recs []Recommendation
	if err := json.Unmarshal(raw, &recs); err != nil {
		e.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		e.cacheMisses.Add(1)
		metrics.RecordCacheLookup("recommend", false)
		return nil, false
	}
	e.cacheHits.Add(1)
	metrics.RecordCacheLookup("recommend", true)
	return recs, true
}

func (e *Engine) toCache(key string, recs []Recommendation) {
	if e.cache == nil || !e.config.Cache.Enabled {
		return
	}
	raw, err := json.Marshal(recs)
	if err != nil {
		e.logger.Warn().Err(err).Msg("failed to encode recommendations for cache")
		return
	}
	e.cache.Set(key, raw)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
