// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/validation"
)

// Recommend returns the titles most similar to an exact title.
//
// @Summary Similar titles
// @Description Ranks every other row by cosine similarity of TF-IDF vectors over director, cast, genres and description. An unknown title answers found=false with no results.
// @Tags Recommend
// @Produce json
// @Param title query string true "Exact title"
// @Param n query int false "Number of results (default 5)"
// @Success 200 {object} models.APIResponse{data=models.RecommendResponse}
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 503 {object} models.APIResponse "Model not built yet"
// @Router /recommend [get]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := validation.RecommendRequest{
		Title: r.URL.Query().Get("title"),
		N:     getIntParam(r, "n", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	_, found, err := h.engine.Lookup(req.Title)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	resp := models.RecommendResponse{
		Query:   req.Title,
		Found:   found,
		N:       h.engine.NormalizeN(req.N),
		Results: []recommend.Recommendation{},
	}
	if found {
		recs, err := h.engine.Recommend(r.Context(), req.Title, req.N)
		if err != nil {
			respondEngineError(w, err)
			return
		}
		resp.Results = recs
	}

	logging.Ctx(r.Context()).Debug().
		Str("title", sanitizeLogValue(req.Title)).
		Bool("found", found).
		Int("results", len(resp.Results)).
		Msg("recommend")
	respondSuccess(w, resp, start, h.modelVersion())
}

// Suggest returns close title matches for a query.
//
// @Summary Did you mean
// @Description Returns up to 5 catalog titles whose sequence similarity to q is at least 0.6, best first.
// @Tags Recommend
// @Produce json
// @Param q query string true "Query text"
// @Success 200 {object} models.APIResponse{data=models.SuggestResponse}
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 503 {object} models.APIResponse "Model not built yet"
// @Router /suggest [get]
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := validation.SuggestRequest{Query: r.URL.Query().Get("q")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	matches, err := h.engine.SuggestScored(req.Query)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondSuccess(w, models.SuggestResponse{
		Query:       req.Query,
		Found:       len(matches) > 0,
		Suggestions: matches,
	}, start, h.modelVersion())
}

// Search runs the dashboard lookup: an exact title yields its details and
// recommendations, otherwise close matches are offered.
//
// @Summary Dashboard search
// @Description Exact match: details plus recommendations (outcome "found"). Otherwise fuzzy suggestions (outcome "suggestions"), or outcome "not_found" when nothing is close.
// @Tags Recommend
// @Produce json
// @Param title query string true "Title as typed"
// @Param n query int false "Number of recommendations (default 5)"
// @Success 200 {object} models.APIResponse{data=models.SearchResponse}
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 503 {object} models.APIResponse "Model not built yet"
// @Router /search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := validation.SearchRequest{
		Title: r.URL.Query().Get("title"),
		N:     getIntParam(r, "n", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	resp, err := h.search(r, req)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondSuccess(w, resp, start, h.modelVersion())
}

func (h *Handler) search(r *http.Request, req validation.SearchRequest) (models.SearchResponse, error) {
	resp := models.SearchResponse{Query: req.Title}

	it, found, err := h.engine.Lookup(req.Title)
	if err != nil {
		return resp, err
	}
	if found {
		recs, err := h.engine.Recommend(r.Context(), req.Title, req.N)
		if err != nil {
			return resp, err
		}
		detail := models.NewTitleDetail(&it)
		resp.Outcome = models.SearchFound
		resp.Details = &detail
		resp.Recommendations = recs
		return resp, nil
	}

	matches, err := h.engine.SuggestScored(req.Title)
	if err != nil {
		return resp, err
	}
	if len(matches) == 0 {
		resp.Outcome = models.SearchNotFound
		return resp, nil
	}
	resp.Outcome = models.SearchSuggestions
	resp.Suggestions = matches
	return resp, nil
}
