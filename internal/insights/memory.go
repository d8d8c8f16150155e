// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package insights

import (
	"context"
	"sort"
	"sync"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Memory aggregates in process. Counts are computed once per Refresh.
type Memory struct {
	mu    sync.RWMutex
	types []TypeCount
	years []YearCount
}

// NewMemory returns an empty in-process aggregator.
func NewMemory() *Memory {
	return &Memory{types: []TypeCount{}, years: []YearCount{}}
}

// Name implements Aggregator.
func (m *Memory) Name() string { return EngineMemory }

// Refresh implements Aggregator.
func (m *Memory) Refresh(_ context.Context, ds *catalog.Dataset) error {
	types, years := CountItems(ds.Items())
	m.mu.Lock()
	m.types, m.years = types, years
	m.mu.Unlock()
	return nil
}

// TypeCounts implements Aggregator.
func (m *Memory) TypeCounts(context.Context) ([]TypeCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]TypeCount(nil), m.types...), nil
}

// YearCounts implements Aggregator.
func (m *Memory) YearCounts(context.Context) ([]YearCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]YearCount(nil), m.years...), nil
}

// Close implements Aggregator.
func (m *Memory) Close() error { return nil }

// CountItems returns the type and year charts for items.
func CountItems(items []catalog.Item) ([]TypeCount, []YearCount) {
	byType := make(map[string]int64)
	byYear := make(map[int]int64)
	for i := range items {
		byType[items[i].Type]++
		byYear[items[i].ReleaseYear]++
	}

	types := make([]TypeCount, 0, len(byType))
	for t, n := range byType {
		types = append(types, TypeCount{Type: t, Count: n})
	}
	sort.Slice(types, func(i, j int) bool {
		if types[i].Count != types[j].Count {
			return types[i].Count > types[j].Count
		}
		return types[i].Type < types[j].Type
	})

	years := make([]YearCount, 0, len(byYear))
	for y, n := range byYear {
		years = append(years, YearCount{Year: y, Count: n})
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })

	return types, years
}
