// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"math"
	"sort"
)

// SparseRow is one L2-normalized document vector. Indices are strictly
// increasing term ids; Values[k] is the weight of term Indices[k].
type SparseRow struct {
	Indices []int
	Values  []float64
}

// IsZero reports whether the row has no terms.
func (r SparseRow) IsZero() bool { return len(r.Indices) == 0 }

// Dot returns the inner product of two rows.
func (r SparseRow) Dot(o SparseRow) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(r.Indices) && j < len(o.Indices) {
		switch {
		case r.Indices[i] == o.Indices[j]:
			sum += r.Values[i] * o.Values[j]
			i++
			j++
		case r.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// SparseMatrix is an R x V document-term matrix.
type SparseMatrix struct {
	Rows  []SparseRow
	Vocab []string // term id -> term, sorted
}

// NumRows returns R.
func (m *SparseMatrix) NumRows() int { return len(m.Rows) }

// NumCols returns V.
func (m *SparseMatrix) NumCols() int { return len(m.Vocab) }

// NonZero returns the number of stored weights.
func (m *SparseMatrix) NonZero() int {
	n := 0
	for i := range m.Rows {
		n += len(m.Rows[i].Indices)
	}
	return n
}

// TFIDFVectorizer turns documents into TF-IDF vectors.
//
// A vectorizer is single use: FitTransform learns the vocabulary and IDF
// weights from the corpus it is given and returns that corpus' matrix.
type TFIDFVectorizer struct {
	stopWords map[string]struct{}
	idf       []float64
	vocab     map[string]int
}

// NewTFIDFVectorizer returns a vectorizer that drops English stop words.
func NewTFIDFVectorizer() *TFIDFVectorizer {
	return &TFIDFVectorizer{stopWords: EnglishStopWords()}
}

// NewTFIDFVectorizerWithStopWords uses the given stop list. A nil or empty
// set keeps every token.
func NewTFIDFVectorizerWithStopWords(stop map[string]struct{}) *TFIDFVectorizer {
	return &TFIDFVectorizer{stopWords: stop}
}

// FitTransform builds the vocabulary from docs and returns one row per
// document, in input order.
func (v *TFIDFVectorizer) FitTransform(docs []string) *SparseMatrix {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tf := make(map[string]int)
		for _, tok := range analyze(doc, v.stopWords) {
			tf[tok]++
		}
		for term := range tf {
			df[term]++
		}
		counts[i] = tf
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v.vocab = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(docs))
	for id, term := range terms {
		v.vocab[term] = id
		v.idf[id] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	rows := make([]SparseRow, len(docs))
	for i, tf := range counts {
		rows[i] = v.weigh(tf)
	}
	return &SparseMatrix{Rows: rows, Vocab: terms}
}

// weigh converts raw counts to a normalized row.
func (v *TFIDFVectorizer) weigh(tf map[string]int) SparseRow {
	if len(tf) == 0 {
		return SparseRow{}
	}
	type entry struct{ id, count int }
	entries := make([]entry, 0, len(tf))
	for term, c := range tf {
		entries = append(entries, entry{v.vocab[term], c})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	row := SparseRow{Indices: make([]int, len(entries)), Values: make([]float64, len(entries))}
	var norm float64
	for k, e := range entries {
		w := float64(e.count) * v.idf[e.id]
		row.Indices[k] = e.id
		row.Values[k] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for k := range row.Values {
		row.Values[k] /= norm
	}
	return row
}

// VocabularySize returns V after FitTransform.
func (v *TFIDFVectorizer) VocabularySize() int { return len(v.idf) }

// IDF returns the learned weight of term and whether it is in the vocabulary.
func (v *TFIDFVectorizer) IDF(term string) (float64, bool) {
	id, ok := v.vocab[term]
	if !ok {
		return 0, false
	}
	return v.idf[id], true
}
