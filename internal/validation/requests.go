// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package validation

import "github.com/go-playground/validator/v10"

// MaxQueryLen bounds free-text query parameters.
const MaxQueryLen = 500

// RecommendRequest is GET /recommend. N <= 0 selects the default count and
// N above the configured maximum is clamped by the engine, so N carries no
// range rule.
type RecommendRequest struct {
	Title string `query:"title" validate:"required,notblank,max=500"`
	N     int    `query:"n"`
}

// SuggestRequest is GET /suggest.
type SuggestRequest struct {
	Query string `query:"q" validate:"required,notblank,max=500"`
}

// SearchRequest is GET /search: the dashboard's title box.
type SearchRequest struct {
	Title string `query:"title" validate:"required,notblank,max=500"`
	N     int    `query:"n"`
}

// CatalogRequest is GET /catalog. Zero years leave the bound open.
type CatalogRequest struct {
	Type     string `query:"type" validate:"max=100"`
	YearFrom int    `query:"year_from" validate:"gte=0,lte=9999"`
	YearTo   int    `query:"year_to" validate:"gte=0,lte=9999"`
	Limit    int    `query:"limit" validate:"gte=0,lte=10000"`
	Offset   int    `query:"offset" validate:"gte=0"`
}

// catalogRequestRange rejects an inverted year range.
func catalogRequestRange(sl validator.StructLevel) {
	req, ok := sl.Current().Interface().(CatalogRequest)
	if !ok {
		return
	}
	if req.YearFrom != 0 && req.YearTo != 0 && req.YearFrom > req.YearTo {
		sl.ReportError(req.YearTo, "year_to", "YearTo", "year_range", "")
	}
}
