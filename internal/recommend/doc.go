// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend serves content-based recommendations over a catalog.
//
// # Architecture
//
// A Model bundles one catalog.Dataset with:
//
//   - TF-IDF vectors of every row's combined features (algorithms.TFIDFVectorizer)
//   - The dense cosine similarity matrix of those vectors (algorithms.BuildSimilarity)
//   - A fuzzy.Matcher over the catalog titles
//
// The Engine publishes one Model at a time through an atomic pointer.
// Queries read the pointer and never take a lock; builds are serialized and
// swap in a complete Model only after it has been fully computed.
//
// # Memoization
//
// Models are keyed by the dataset's content hash. Building for a dataset
// whose hash matches the served model is a no-op, so the matrix is computed
// once per dataset version. A rebuild only happens when a caller signals a
// change (LoadFile or Build), never implicitly.
//
// # Ranking
//
// Recommend resolves a title to the first row carrying it, ranks every
// other row by descending similarity with a stable sort, so equal scores
// keep catalog order, and rounds scores to 3 decimals only after ranking.
// An unknown title is a normal outcome and yields an empty result.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if _, _, err := engine.LoadFile(ctx, "netflix_titles.csv"); err != nil {
//	    return err
//	}
//	recs, err := engine.Recommend(ctx, "Stranger Things", 5)
//
// # Scale
//
// Building costs O(R^2 * V) time and O(R^2) memory for R rows. Catalogs
// above Limits.MaxRows are rejected with ErrDatasetTooLarge.
package recommend
