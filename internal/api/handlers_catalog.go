// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinematch/internal/insights"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/validation"
)

// Catalog returns catalog rows filtered for display.
//
// @Summary List catalog rows
// @Description Returns catalog rows in file order, filtered by type and release year range and paged by limit/offset. Filters never affect recommendations.
// @Tags Catalog
// @Produce json
// @Param type query string false "Content type, or All"
// @Param year_from query int false "Lowest release year (inclusive)"
// @Param year_to query int false "Highest release year (inclusive)"
// @Param limit query int false "Page size"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} models.APIResponse{data=models.CatalogPage}
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 503 {object} models.APIResponse "Model not built yet"
// @Router /catalog [get]
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defaultSize, maxSize := h.pageSizes()

	req := validation.CatalogRequest{
		Type:     strings.TrimSpace(r.URL.Query().Get("type")),
		YearFrom: getIntParam(r, "year_from", 0),
		YearTo:   getIntParam(r, "year_to", 0),
		Limit:    getIntParam(r, "limit", defaultSize),
		Offset:   getIntParam(r, "offset", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	limit := req.Limit
	if limit == 0 {
		limit = defaultSize
	}
	limit = min(limit, maxSize)

	items, err := h.engine.Catalog()
	if err != nil {
		respondEngineError(w, err)
		return
	}

	filter := insights.Filter{Type: req.Type, YearFrom: req.YearFrom, YearTo: req.YearTo}
	filtered := filter.Apply(items)

	lo := min(req.Offset, len(filtered))
	hi := min(lo+limit, len(filtered))

	typ := req.Type
	if typ == "" {
		typ = insights.AllTypes
	}
	respondSuccess(w, models.CatalogPage{
		Items:      filtered[lo:hi],
		Filter:     models.CatalogFilter{Type: typ, YearFrom: req.YearFrom, YearTo: req.YearTo},
		Pagination: models.NewPagination(limit, req.Offset, len(filtered)),
	}, start, h.modelVersion())
}

// CatalogFilters returns the options for the dashboard's filter controls.
//
// @Summary Filter options
// @Description Returns "All" plus the sorted distinct types, the observed release year bounds, and the default year range (2000 clamped to the observed range, through the latest year).
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.CatalogFilters}
// @Failure 503 {object} models.APIResponse "Model not built yet"
// @Router /catalog/filters [get]
func (h *Handler) CatalogFilters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	items, err := h.engine.Catalog()
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondSuccess(w, insights.Options(items), start, h.modelVersion())
}

// TitleDetail returns the detail panel for a title.
//
// @Summary Title details
// @Description Returns title, type, release year, genre, director, cast and country of the first row with this exact title.
// @Tags Catalog
// @Produce json
// @Param title path string true "Exact title"
// @Success 200 {object} models.APIResponse{data=models.TitleDetail}
// @Failure 404 {object} models.APIResponse "No row has this title"
// @Failure 503 {object} models.APIResponse "Model not built yet"
// @Router /titles/{title} [get]
func (h *Handler) TitleDetail(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	title := titleParam(r)

	req := validation.RecommendRequest{Title: title}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	it, found, err := h.engine.Lookup(title)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "No title matches exactly", nil)
		return
	}
	respondSuccess(w, models.NewTitleDetail(&it), start, h.modelVersion())
}

// titleParam returns the decoded {title} path segment. chi routes on
// RawPath when the path carries escapes such as %2F, leaving the
// parameter encoded.
func titleParam(r *http.Request) string {
	raw := chi.URLParam(r, "title")
	if r.URL.RawPath == "" {
		return raw
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}
