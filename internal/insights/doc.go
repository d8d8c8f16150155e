// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package insights computes the dashboard's display-side data: filter
// options, the filtered catalog view and the two aggregate charts (rows by
// type, rows by release year).
//
// Filtering only affects what is displayed. Charts always count the full
// catalog and nothing here touches the similarity model.
//
// Aggregates come from an Aggregator. The memory aggregator counts in Go;
// the duckdb aggregator loads the catalog into an in-memory DuckDB table
// and answers with GROUP BY queries. Both return identical results.
package insights
