// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package insights

import (
	"sort"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// DefaultYearFrom is the preselected lower bound of the year filter.
const DefaultYearFrom = 2000

// FilterOptions populates the dashboard's filter controls.
type FilterOptions struct {
	// Types is "All" followed by the distinct observed types, sorted.
	Types []string `json:"types"`

	MinYear int `json:"min_year"`
	MaxYear int `json:"max_year"`

	// DefaultFrom is DefaultYearFrom clamped to [MinYear, MaxYear];
	// DefaultTo is MaxYear.
	DefaultFrom int `json:"default_from"`
	DefaultTo   int `json:"default_to"`
}

// Options derives the filter controls from items.
func Options(items []catalog.Item) FilterOptions {
	opts := FilterOptions{Types: []string{AllTypes}}
	if len(items) == 0 {
		return opts
	}

	seen := make(map[string]struct{})
	distinct := make([]string, 0, 4)
	opts.MinYear, opts.MaxYear = items[0].ReleaseYear, items[0].ReleaseYear
	for i := range items {
		it := &items[i]
		if _, ok := seen[it.Type]; !ok {
			seen[it.Type] = struct{}{}
			distinct = append(distinct, it.Type)
		}
		opts.MinYear = min(opts.MinYear, it.ReleaseYear)
		opts.MaxYear = max(opts.MaxYear, it.ReleaseYear)
	}
	sort.Strings(distinct)
	opts.Types = append(opts.Types, distinct...)

	opts.DefaultFrom = min(max(DefaultYearFrom, opts.MinYear), opts.MaxYear)
	opts.DefaultTo = opts.MaxYear
	return opts
}

// Filter selects rows for display. Zero YearFrom or YearTo leaves that
// bound open; Type "" or "All" matches every type.
type Filter struct {
	Type     string
	YearFrom int
	YearTo   int
}

// Matches reports whether it passes the filter.
func (f Filter) Matches(it *catalog.Item) bool {
	if f.Type != "" && f.Type != AllTypes && it.Type != f.Type {
		return false
	}
	if f.YearFrom != 0 && it.ReleaseYear < f.YearFrom {
		return false
	}
	if f.YearTo != 0 && it.ReleaseYear > f.YearTo {
		return false
	}
	return true
}

// Apply returns the matching rows in catalog order.
func (f Filter) Apply(items []catalog.Item) []catalog.Item {
	out := make([]catalog.Item, 0, len(items))
	for i := range items {
		if f.Matches(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}
