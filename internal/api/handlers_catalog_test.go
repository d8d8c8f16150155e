// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/cinematch/internal/insights"
	"github.com/tomtom215/cinematch/internal/models"
)

func TestCatalog_Unfiltered(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	w, body := env.do(t, http.MethodGet, "/api/v1/catalog")
	expectStatus(t, w, http.StatusOK)

	var page models.CatalogPage
	decodeData(t, body, &page)
	if len(page.Items) != len(testItems()) || page.Pagination.Total != len(testItems()) {
		t.Fatalf("got %d items (total %d), want %d", len(page.Items), page.Pagination.Total, len(testItems()))
	}
	for i, it := range page.Items {
		if it.Index != i {
			t.Errorf("item %d has index %d; file order lost", i, it.Index)
		}
	}
	if page.Filter.Type != insights.AllTypes {
		t.Errorf("filter type = %q, want All", page.Filter.Type)
	}
}

func TestCatalog_Filters(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"movies", "type=Movie", []string{"Dick Johnson Is Dead", "Dark", "AC/DC: Live"}},
		{"all", "type=All&year_from=2017", []string{"Dark", "Dick Johnson Is Dead", "Midnight Mass"}},
		{"shows in range", "type=TV+Show&year_from=2016&year_to=2016", []string{"Stranger Things", "The OA", "Stranger Things Copy"}},
		{"open lower bound", "year_to=2005", []string{"Dark", "AC/DC: Live"}},
		{"no matches", "type=Documentary", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := env.do(t, http.MethodGet, "/api/v1/catalog?"+tt.query)
			expectStatus(t, w, http.StatusOK)
			var page models.CatalogPage
			decodeData(t, body, &page)
			if len(page.Items) != len(tt.want) {
				t.Fatalf("got %d items, want %d: %+v", len(page.Items), len(tt.want), page.Items)
			}
			for i, it := range page.Items {
				if it.Title != tt.want[i] {
					t.Errorf("item %d = %q, want %q", i, it.Title, tt.want[i])
				}
			}
		})
	}
}

func TestCatalog_FiltersDoNotAffectModel(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	before := env.engine.Status()
	env.do(t, http.MethodGet, "/api/v1/catalog?type=Movie&year_from=2020")
	after := env.engine.Status()
	if before.Rows != after.Rows || before.Version != after.Version || before.DatasetHash != after.DatasetHash {
		t.Errorf("model changed by a display filter: %+v -> %+v", before, after)
	}
}

func TestCatalog_Pagination(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	_, body := env.do(t, http.MethodGet, "/api/v1/catalog?limit=3&offset=2")
	var page models.CatalogPage
	decodeData(t, body, &page)
	if len(page.Items) != 3 || page.Items[0].Index != 2 {
		t.Fatalf("unexpected page: %+v", page.Items)
	}
	if !page.Pagination.HasMore || page.Pagination.Limit != 3 || page.Pagination.Offset != 2 {
		t.Errorf("pagination = %+v", page.Pagination)
	}

	_, body = env.do(t, http.MethodGet, "/api/v1/catalog?offset=100")
	decodeData(t, body, &page)
	if len(page.Items) != 0 || page.Pagination.HasMore {
		t.Errorf("offset past the end: %+v", page)
	}
}

func TestCatalog_Validation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	for _, query := range []string{"year_from=2020&year_to=2010", "offset=-1", "limit=20000"} {
		w, body := env.do(t, http.MethodGet, "/api/v1/catalog?"+query)
		expectStatus(t, w, http.StatusBadRequest)
		expectErrorCode(t, body, models.ErrCodeValidation)
	}
}

func TestCatalog_NoModel(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)

	for _, target := range []string{"/api/v1/catalog", "/api/v1/catalog/filters", "/api/v1/titles/Dark", "/api/v1/insights/types"} {
		w, body := env.do(t, http.MethodGet, target)
		expectStatus(t, w, http.StatusServiceUnavailable)
		expectErrorCode(t, body, models.ErrCodeModelUnavailable)
	}
}

func TestCatalogFilters(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	w, body := env.do(t, http.MethodGet, "/api/v1/catalog/filters")
	expectStatus(t, w, http.StatusOK)
	var opts models.CatalogFilters
	decodeData(t, body, &opts)

	wantTypes := []string{"All", "Movie", "TV Show"}
	if len(opts.Types) != len(wantTypes) {
		t.Fatalf("types = %v, want %v", opts.Types, wantTypes)
	}
	for i := range wantTypes {
		if opts.Types[i] != wantTypes[i] {
			t.Errorf("types = %v, want %v", opts.Types, wantTypes)
		}
	}
	if opts.MinYear != 1992 || opts.MaxYear != 2021 || opts.DefaultFrom != 2000 || opts.DefaultTo != 2021 {
		t.Errorf("year options = %+v", opts)
	}
}

func TestTitleDetail(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	w, body := env.do(t, http.MethodGet, "/api/v1/titles/Dark")
	expectStatus(t, w, http.StatusOK)
	var d models.TitleDetail
	decodeData(t, body, &d)
	if d.Index != 1 || d.Type != "TV Show" || d.Country != "Germany" {
		t.Errorf("detail = %+v, want the first Dark row", d)
	}
	if d.Director != "Unknown" {
		t.Errorf("director = %q, want the Unknown fill", d.Director)
	}
	if d.Genre != "Crime TV Shows, TV Dramas, TV Sci-Fi & Fantasy" {
		t.Errorf("genre = %q", d.Genre)
	}
}

func TestTitleDetail_EscapedTitle(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	w, body := env.do(t, http.MethodGet, "/api/v1/titles/AC%2FDC%3A%20Live")
	expectStatus(t, w, http.StatusOK)
	var d models.TitleDetail
	decodeData(t, body, &d)
	if d.Title != "AC/DC: Live" {
		t.Errorf("title = %q", d.Title)
	}

	w, body = env.do(t, http.MethodGet, "/api/v1/titles/Midnight%20Mass")
	expectStatus(t, w, http.StatusOK)
	decodeData(t, body, &d)
	if d.Title != "Midnight Mass" {
		t.Errorf("title = %q", d.Title)
	}
}

func TestTitleDetail_NotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	w, body := env.do(t, http.MethodGet, "/api/v1/titles/Nothing%20Here")
	expectStatus(t, w, http.StatusNotFound)
	expectErrorCode(t, body, models.ErrCodeNotFound)
}
