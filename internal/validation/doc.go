// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package validation validates API query parameters with
// go-playground/validator v10.
//
// A single validator instance is built once (it caches struct metadata) and
// carries two custom rules:
//
//   - notblank: the string must contain a non-whitespace rune
//   - a struct-level rule on CatalogRequest rejecting YearFrom > YearTo
//
// Failures are translated into the API's VALIDATION_ERROR shape:
//
//	req := validation.RecommendRequest{Title: q.Get("title"), N: n}
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
//	    return
//	}
package validation
