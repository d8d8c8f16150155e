// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/fuzzy"
	"github.com/tomtom215/cinematch/internal/insights"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// CatalogFilter echoes the display filter that produced a CatalogPage.
type CatalogFilter struct {
	Type     string `json:"type"`
	YearFrom int    `json:"year_from,omitempty"`
	YearTo   int    `json:"year_to,omitempty"`
}

// CatalogPage is one page of the filtered catalog.
type CatalogPage struct {
	Items      []catalog.Item `json:"items"`
	Filter     CatalogFilter  `json:"filter"`
	Pagination PaginationInfo `json:"pagination"`
}

// CatalogFilters populates the dashboard's filter controls.
type CatalogFilters = insights.FilterOptions

// TitleDetail is the detail panel shown for a selected title.
type TitleDetail struct {
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	ReleaseYear int    `json:"release_year"`
	Genre       string `json:"genre"`
	Director    string `json:"director"`
	Cast        string `json:"cast"`
	Country     string `json:"country"`
	Description string `json:"description"`
	Rating      string `json:"rating,omitempty"`
	Duration    string `json:"duration,omitempty"`
	DateAdded   string `json:"date_added,omitempty"`
}

// NewTitleDetail builds the detail panel for it. Genre is the listed_in
// column.
func NewTitleDetail(it *catalog.Item) TitleDetail {
	return TitleDetail{
		Index:       it.Index,
		Title:       it.Title,
		Type:        it.Type,
		ReleaseYear: it.ReleaseYear,
		Genre:       it.ListedIn,
		Director:    it.Director,
		Cast:        it.Cast,
		Country:     it.Country,
		Description: it.Description,
		Rating:      it.Rating,
		Duration:    it.Duration,
		DateAdded:   it.DateAdded,
	}
}

// RecommendResponse answers GET /recommend. Found is false when the title
// has no exact match; Results is then empty.
type RecommendResponse struct {
	Query   string                     `json:"query"`
	Found   bool                       `json:"found"`
	N       int                        `json:"n"`
	Results []recommend.Recommendation `json:"results"`
}

// SuggestResponse answers GET /suggest.
type SuggestResponse struct {
	Query       string        `json:"query"`
	Found       bool          `json:"found"`
	Suggestions []fuzzy.Match `json:"suggestions"`
}

// Search outcomes.
const (
	SearchFound       = "found"
	SearchSuggestions = "suggestions"
	SearchNotFound    = "not_found"
)

// SearchResponse answers GET /search. Exactly one of Details (with
// Recommendations) or Suggestions is populated unless Outcome is not_found.
type SearchResponse struct {
	Query           string                     `json:"query"`
	Outcome         string                     `json:"outcome"`
	Details         *TitleDetail               `json:"details,omitempty"`
	Recommendations []recommend.Recommendation `json:"recommendations,omitempty"`
	Suggestions     []fuzzy.Match              `json:"suggestions,omitempty"`
}
