// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/insights"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
)

func testItems() []catalog.Item {
	return []catalog.Item{
		{Title: "Stranger Things", Type: "TV Show", ReleaseYear: 2016, Director: "Shawn Levy", Cast: "Winona Ryder, David Harbour", ListedIn: "TV Dramas, TV Horror, TV Sci-Fi & Fantasy", Country: "United States", Description: "When a young boy vanishes, a small town uncovers a mystery involving secret experiments."},
		{Title: "Dark", Type: "TV Show", ReleaseYear: 2017, Cast: "Louis Hofmann", ListedIn: "Crime TV Shows, TV Dramas, TV Sci-Fi & Fantasy", Country: "Germany", Description: "A missing child sets four families on a frantic hunt in a small town."},
		{Title: "The OA", Type: "TV Show", ReleaseYear: 2016, Cast: "Brit Marling", ListedIn: "TV Dramas, TV Mysteries, TV Sci-Fi & Fantasy", Description: "A young woman returns home after seven years missing."},
		{Title: "Dick Johnson Is Dead", Type: "Movie", ReleaseYear: 2020, Director: "Kirsten Johnson", ListedIn: "Documentaries", Description: "As her father nears the end of his life, filmmaker Kirsten Johnson stages his death."},
		{Title: "Stranger Things Copy", Type: "TV Show", ReleaseYear: 2016, Director: "Shawn Levy", Cast: "Winona Ryder, David Harbour", ListedIn: "TV Dramas, TV Horror, TV Sci-Fi & Fantasy", Description: "When a young boy vanishes, a small town uncovers a mystery involving secret experiments."},
		{Title: "Dark", Type: "Movie", ReleaseYear: 2005, Director: "Someone Else", ListedIn: "Horror Movies", Description: "Unrelated film sharing a title."},
		{Title: "AC/DC: Live", Type: "Movie", ReleaseYear: 1992, Director: "David Mallet", ListedIn: "Music & Musicals", Description: "The band plays Donington."},
		{Title: "Midnight Mass", Type: "TV Show", ReleaseYear: 2021, Director: "Mike Flanagan", ListedIn: "TV Dramas, TV Horror, TV Mysteries", Description: "A charismatic priest arrives in a small island town."},
	}
}

type fakeReloader struct {
	mu      sync.Mutex
	err     error
	sources []string
}

func (f *fakeReloader) Trigger(source string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sources = append(f.sources, source)
	return "evt-1", nil
}

func (f *fakeReloader) BreakerState() string { return "closed" }

type testEnv struct {
	handler  *Handler
	engine   *recommend.Engine
	reloader *fakeReloader
	server   http.Handler
}

// newTestEnv builds a handler around a model of testItems. With built false
// the engine has no model yet.
func newTestEnv(t *testing.T, built bool) *testEnv {
	t.Helper()

	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	agg := insights.NewMemory()
	if built {
		ds := catalog.NewDataset(testItems(), "test")
		if _, _, err := engine.Build(context.Background(), ds); err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if err := agg.Refresh(context.Background(), ds); err != nil {
			t.Fatalf("Refresh() error = %v", err)
		}
	}

	reloader := &fakeReloader{}
	h := NewHandler(engine, agg, reloader, nil, nil)
	return &testEnv{
		handler:  h,
		engine:   engine,
		reloader: reloader,
		server:   NewRouter(h, nil).SetupChi(),
	}
}

// envelope mirrors models.APIResponse with Data left undecoded.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	e.server.ServeHTTP(w, req)

	var body envelope
	if ct := w.Header().Get("Content-Type"); ct == "application/json" {
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s %s: undecodable body %q: %v", method, target, w.Body.String(), err)
		}
	}
	return w, body
}

func decodeData(t *testing.T, body envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(body.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", body.Data, err)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body %s", w.Code, want, w.Body.String())
	}
}

func expectErrorCode(t *testing.T, body envelope, code string) {
	t.Helper()
	if body.Status != models.StatusError || body.Error == nil {
		t.Fatalf("expected error envelope, got %+v", body)
	}
	if body.Error.Code != code {
		t.Errorf("error code = %q, want %q", body.Error.Code, code)
	}
}

var errBusClosed = errors.New("bus closed")
