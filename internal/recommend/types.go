// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"
	"math"
	"time"
)

// ErrDatasetTooLarge is returned when a catalog exceeds Limits.MaxRows.
var ErrDatasetTooLarge = errors.New("dataset exceeds the similarity matrix row limit")

// ErrNoModel is returned by operations that need a model before one is built.
var ErrNoModel = errors.New("no model built")

// Recommendation is one ranked neighbor of a queried title.
type Recommendation struct {
	// Rank is the 1-based position in the result list.
	Rank int `json:"rank"`

	// Title of the recommended row.
	Title string `json:"title"`

	// Score is the cosine similarity rounded to 3 decimals.
	Score float64 `json:"score"`

	// Index is the row index in the catalog.
	Index int `json:"index"`

	Type        string `json:"type"`
	ReleaseYear int    `json:"release_year"`
}

// Status describes the model currently being served.
type Status struct {
	Ready          bool      `json:"ready"`
	Version        int64     `json:"version"`
	DatasetHash    string    `json:"dataset_hash,omitempty"`
	Source         string    `json:"source,omitempty"`
	Rows           int       `json:"rows"`
	VocabularySize int       `json:"vocabulary_size"`
	NonZero        int       `json:"non_zero"`
	BuiltAt        time.Time `json:"built_at,omitempty"`
	BuildMS        int64     `json:"build_ms"`
}

// Metrics are engine counters since process start.
type Metrics struct {
	RequestCount int64 `json:"request_count"`
	NotFound     int64 `json:"not_found"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
	Builds       int64 `json:"builds"`
	MemoHits     int64 `json:"memo_hits"`
}

// roundScore rounds to 3 decimal places, half away from zero.
func roundScore(v float64) float64 {
	return math.Round(v*1000) / 1000
}
