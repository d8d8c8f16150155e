// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package insights

import (
	"context"
	"fmt"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// AllTypes is the type filter value that disables type filtering.
const AllTypes = "All"

// TypeCount is one bar of the content type chart.
type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// YearCount is one point of the release year chart.
type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// Aggregator answers chart queries for the catalog it was last refreshed
// with.
type Aggregator interface {
	// Refresh replaces the aggregated catalog.
	Refresh(ctx context.Context, ds *catalog.Dataset) error

	// TypeCounts returns rows per type, largest first, ties by type name.
	TypeCounts(ctx context.Context) ([]TypeCount, error)

	// YearCounts returns rows per release year in ascending year order.
	YearCounts(ctx context.Context) ([]YearCount, error)

	// Name identifies the engine.
	Name() string

	Close() error
}

// Engine names.
const (
	EngineMemory = "memory"
	EngineDuckDB = "duckdb"
)

// New creates the aggregator named by engine.
func New(engine string) (Aggregator, error) {
	switch engine {
	case EngineMemory, "":
		return NewMemory(), nil
	case EngineDuckDB:
		return NewDuckDB()
	default:
		return nil, fmt.Errorf("unknown insights engine %q", engine)
	}
}
