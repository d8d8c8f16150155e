// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package algorithms implements the text-similarity primitives behind the
// recommender: a TF-IDF vectorizer and a dense cosine similarity matrix.
//
// The vectorizer follows the classic smoothed TF-IDF recipe:
//
//	tf(t, d)  = raw count of t in d
//	idf(t)    = ln((1 + n) / (1 + df(t))) + 1
//	w(t, d)   = tf(t, d) * idf(t), then each row is L2-normalized
//
// Because rows are unit length, cosine similarity is a sparse dot product.
// BuildSimilarity computes the upper triangle through an inverted index and
// mirrors it, so the result is exactly symmetric.
//
// Both steps are deterministic: the vocabulary is sorted and every sum is
// accumulated in term-index order.
package algorithms
