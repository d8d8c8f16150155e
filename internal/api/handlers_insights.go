// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// InsightsTypes returns the content type chart.
//
// @Summary Rows per content type
// @Description Counts the full catalog by type, largest first, ties by type name. Display filters do not apply.
// @Tags Insights
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]insights.TypeCount}
// @Failure 503 {object} models.APIResponse "Model not built yet"
// @Router /insights/types [get]
func (h *Handler) InsightsTypes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.insightsReady(w) {
		return
	}
	counts, err := h.insights.TypeCounts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to count types", err)
		return
	}
	respondSuccess(w, counts, start, h.modelVersion())
}

// InsightsYears returns the release year chart.
//
// @Summary Rows per release year
// @Description Counts the full catalog by release year in ascending year order. Display filters do not apply.
// @Tags Insights
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]insights.YearCount}
// @Failure 503 {object} models.APIResponse "Model not built yet"
// @Router /insights/years [get]
func (h *Handler) InsightsYears(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.insightsReady(w) {
		return
	}
	counts, err := h.insights.YearCounts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to count years", err)
		return
	}
	respondSuccess(w, counts, start, h.modelVersion())
}

// insightsReady answers 503 until a model exists; the aggregator is
// refreshed from each new model.
func (h *Handler) insightsReady(w http.ResponseWriter) bool {
	if h.insights == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeInternal, "Insights are disabled", nil)
		return false
	}
	if h.engine.Model() == nil {
		respondEngineError(w, recommend.ErrNoModel)
		return false
	}
	return true
}
