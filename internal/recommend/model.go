// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/fuzzy"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend/algorithms"
)

// Model is an immutable snapshot: a dataset, its similarity matrix and the
// title matcher. Row i of the dataset is row i of the matrix.
type Model struct {
	version   int64
	dataset   *catalog.Dataset
	sim       *algorithms.SimilarityMatrix
	matcher   *fuzzy.Matcher
	vocabSize int
	nonZero   int
	builtAt   time.Time
	buildTime time.Duration
}

// BuildModel vectorizes the dataset's combined features and computes the
// full similarity matrix. It reads nothing but CombinedFeatures.
func BuildModel(ctx context.Context, ds *catalog.Dataset, cfg *Config) (*Model, error) {
	if ds.Len() > cfg.Limits.MaxRows {
		return nil, fmt.Errorf("%w: %d rows > %d", ErrDatasetTooLarge, ds.Len(), cfg.Limits.MaxRows)
	}

	start := time.Now()
	matrix := algorithms.NewTFIDFVectorizer().FitTransform(ds.Features())
	metrics.RecordBuildPhase("vectorize", time.Since(start))

	simStart := time.Now()
	sim, err := algorithms.BuildSimilarity(ctx, matrix, cfg.BuildWorkers)
	if err != nil {
		return nil, err
	}
	metrics.RecordBuildPhase("similarity", time.Since(simStart))

	m := &Model{
		dataset: ds,
		sim:     sim,
		matcher: fuzzy.NewMatcher(ds.Titles(), fuzzy.Config{
			Cutoff: cfg.Fuzzy.Cutoff,
			Limit:  cfg.Fuzzy.Limit,
		}),
		vocabSize: matrix.NumCols(),
		nonZero:   matrix.NonZero(),
		builtAt:   time.Now().UTC(),
		buildTime: time.Since(start),
	}
	metrics.RecordBuildPhase("total", m.buildTime)
	return m, nil
}

// Dataset returns the catalog the model was built from.
func (m *Model) Dataset() *catalog.Dataset { return m.dataset }

// Similarity returns the similarity matrix.
func (m *Model) Similarity() *algorithms.SimilarityMatrix { return m.sim }

// Version returns the engine-assigned version.
func (m *Model) Version() int64 { return m.version }

// IndexOf resolves a title to its row. When several rows share a title the
// lowest row index wins.
func (m *Model) IndexOf(title string) (int, bool) {
	return m.dataset.IndexOf(title)
}

// Neighbors ranks every row other than idx by descending unrounded
// similarity, keeping row order among equal scores, and returns the first
// n with scores rounded to 3 decimals.
func (m *Model) Neighbors(idx, n int) []Recommendation {
	if n < 0 {
		n = 0
	}
	row := m.sim.Row(idx)
	order := make([]int, 0, len(row))
	for j := range row {
		if j != idx {
			order = append(order, j)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return row[order[a]] > row[order[b]]
	})
	if n < len(order) {
		order = order[:n]
	}

	out := make([]Recommendation, len(order))
	for k, j := range order {
		it := m.dataset.Item(j)
		out[k] = Recommendation{
			Rank:        k + 1,
			Title:       it.Title,
			Score:       roundScore(row[j]),
			Index:       j,
			Type:        it.Type,
			ReleaseYear: it.ReleaseYear,
		}
	}
	return out
}

// Suggest returns close title matches for query.
func (m *Model) Suggest(query string) []string {
	return m.matcher.Suggest(query)
}

// SuggestScored returns close title matches with their ratios.
func (m *Model) SuggestScored(query string) []fuzzy.Match {
	return m.matcher.SuggestScored(query)
}

// Status summarizes the model.
func (m *Model) Status() Status {
	return Status{
		Ready:          true,
		Version:        m.version,
		DatasetHash:    m.dataset.Hash(),
		Source:         m.dataset.Source(),
		Rows:           m.dataset.Len(),
		VocabularySize: m.vocabSize,
		NonZero:        m.nonZero,
		BuiltAt:        m.builtAt,
		BuildMS:        m.buildTime.Milliseconds(),
	}
}
