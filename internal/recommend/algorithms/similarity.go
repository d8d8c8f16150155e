// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// SimilarityMatrix is a dense, symmetric R x R cosine similarity matrix.
// It is read-only after BuildSimilarity returns.
type SimilarityMatrix struct {
	n    int
	data []float64 // row-major
}

// Size returns R.
func (s *SimilarityMatrix) Size() int { return s.n }

// At returns the similarity of rows i and j.
func (s *SimilarityMatrix) At(i, j int) float64 { return s.data[i*s.n+j] }

// Row returns the similarity vector of row i. The slice aliases the
// matrix and must not be modified.
func (s *SimilarityMatrix) Row(i int) []float64 { return s.data[i*s.n : (i+1)*s.n] }

// Equal reports whether two matrices hold exactly the same values.
func (s *SimilarityMatrix) Equal(o *SimilarityMatrix) bool {
	if s.n != o.n {
		return false
	}
	for k := range s.data {
		if s.data[k] != o.data[k] {
			return false
		}
	}
	return true
}

type posting struct {
	row    int
	weight float64
}

// BuildSimilarity computes the pairwise cosine similarity of every row of
// m. Rows of m must be L2-normalized, which FitTransform guarantees, so the
// cosine is the dot product. Zero rows score 0 against every row,
// themselves included.
//
// Time is O(R^2 * V) in the worst case and memory is O(R^2). workers <= 0
// uses runtime.NumCPU(). The build stops early with ctx.Err() when ctx is
// cancelled.
func BuildSimilarity(ctx context.Context, m *SparseMatrix, workers int) (*SimilarityMatrix, error) {
	n := m.NumRows()
	sim := &SimilarityMatrix{n: n, data: make([]float64, n*n)}
	if n == 0 {
		return sim, nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	// Inverted index: term id -> rows containing it, in row order.
	index := make([][]posting, m.NumCols())
	for r := range m.Rows {
		row := &m.Rows[r]
		for k, id := range row.Indices {
			index[id] = append(index[id], posting{row: r, weight: row.Values[k]})
		}
	}

	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acc := make([]float64, n)
			for i := range rows {
				fillUpperRow(sim, m.Rows[i], index, i, acc)
			}
		}()
	}

	var err error
feed:
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case rows <- i:
		}
	}
	close(rows)
	wg.Wait()

	if err != nil {
		return nil, fmt.Errorf("build similarity: %w", err)
	}
	return sim, nil
}

// fillUpperRow writes sim[i][j] and sim[j][i] for every j >= i. Each
// unordered pair is owned by the worker handling its lower row, so no two
// workers write the same cell.
func fillUpperRow(sim *SimilarityMatrix, row SparseRow, index [][]posting, i int, acc []float64) {
	n := sim.n
	for j := i; j < n; j++ {
		acc[j] = 0
	}
	for k, id := range row.Indices {
		w := row.Values[k]
		for _, p := range index[id] {
			if p.row >= i {
				acc[p.row] += w * p.weight
			}
		}
	}
	for j := i; j < n; j++ {
		v := acc[j]
		sim.data[i*n+j] = v
		sim.data[j*n+i] = v
	}
}
