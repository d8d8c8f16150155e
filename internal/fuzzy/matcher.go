// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package fuzzy

import (
	"sort"

	"github.com/pmezard/go-difflib/difflib"
)

// Defaults for the "did you mean" list.
const (
	DefaultCutoff = 0.6
	DefaultLimit  = 5
)

// Match is a suggested title and its sequence ratio against the query.
type Match struct {
	Title string  `json:"title"`
	Ratio float64 `json:"ratio"`
}

// Config controls the cutoff and result size. Zero values select the
// defaults.
type Config struct {
	Cutoff float64
	Limit  int
}

// Matcher holds the candidate titles. It is immutable and safe for
// concurrent use.
type Matcher struct {
	cutoff     float64
	limit      int
	candidates []string
	runes      [][]string
}

// NewMatcher prepares titles for matching. Duplicate titles are kept once,
// at their first position.
func NewMatcher(titles []string, cfg Config) *Matcher {
	if cfg.Cutoff <= 0 {
		cfg.Cutoff = DefaultCutoff
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}

	seen := make(map[string]struct{}, len(titles))
	m := &Matcher{
		cutoff:     cfg.Cutoff,
		limit:      cfg.Limit,
		candidates: make([]string, 0, len(titles)),
		runes:      make([][]string, 0, len(titles)),
	}
	for _, t := range titles {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		m.candidates = append(m.candidates, t)
		m.runes = append(m.runes, splitRunes(t))
	}
	return m
}

// Len returns the number of distinct candidates.
func (m *Matcher) Len() int { return len(m.candidates) }

// Suggest returns up to Limit titles whose ratio against query is at least
// the cutoff, best first. No match yields an empty slice.
func (m *Matcher) Suggest(query string) []string {
	scored := m.SuggestScored(query)
	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.Title
	}
	return out
}

// SuggestScored is Suggest with the ratios. Equal ratios order by
// descending title so the result does not depend on catalog order.
func (m *Matcher) SuggestScored(query string) []Match {
	matches := []Match{}
	if query == "" {
		return matches
	}

	sm := difflib.NewMatcher(nil, splitRunes(query))
	for i, cand := range m.runes {
		sm.SetSeq1(cand)
		if sm.RealQuickRatio() < m.cutoff || sm.QuickRatio() < m.cutoff {
			continue
		}
		if r := sm.Ratio(); r >= m.cutoff {
			matches = append(matches, Match{Title: m.candidates[i], Ratio: r})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Ratio != matches[j].Ratio {
			return matches[i].Ratio > matches[j].Ratio
		}
		return matches[i].Title > matches[j].Title
	})
	if len(matches) > m.limit {
		matches = matches[:m.limit]
	}
	return matches
}

// Ratio returns the sequence ratio of a and b.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
