// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package fuzzy suggests catalog titles close to a query that matched
// nothing exactly.
//
// Scores are the Ratcliff/Obershelp sequence ratio 2*M/T computed over
// Unicode code points, where M is the number of matched runes and T the
// combined length of both strings. Candidates are screened by the cheap
// upper bounds RealQuickRatio and QuickRatio before the full ratio is
// computed. A candidate is kept when all three reach the cutoff (0.6 by
// default) and at most Limit (5 by default) are returned, best first.
package fuzzy
