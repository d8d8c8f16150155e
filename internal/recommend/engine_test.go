// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
)

func testItems() []catalog.Item {
	return []catalog.Item{
		{Title: "Stranger Things", Type: "TV Show", ReleaseYear: 2016, Director: "Shawn Levy", Cast: "Winona Ryder, David Harbour", ListedIn: "TV Dramas, TV Horror, TV Sci-Fi & Fantasy", Description: "When a young boy vanishes, a small town uncovers a mystery involving secret experiments."},
		{Title: "Dark", Type: "TV Show", ReleaseYear: 2017, Cast: "Louis Hofmann", ListedIn: "Crime TV Shows, TV Dramas, TV Sci-Fi & Fantasy", Description: "A missing child sets four families on a frantic hunt in a small town."},
		{Title: "The OA", Type: "TV Show", ReleaseYear: 2016, Cast: "Brit Marling", ListedIn: "TV Dramas, TV Mysteries, TV Sci-Fi & Fantasy", Description: "A young woman returns home after seven years missing."},
		{Title: "Dick Johnson Is Dead", Type: "Movie", ReleaseYear: 2020, Director: "Kirsten Johnson", ListedIn: "Documentaries", Description: "As her father nears the end of his life, filmmaker Kirsten Johnson stages his death."},
		{Title: "Chef's Table", Type: "TV Show", ReleaseYear: 2015, ListedIn: "Docuseries", Description: "Renowned chefs share their cooking."},
		{Title: "Midnight Mass", Type: "TV Show", ReleaseYear: 2021, Director: "Mike Flanagan", ListedIn: "TV Dramas, TV Horror, TV Mysteries", Description: "A charismatic priest arrives in a small island town."},
		{Title: "Stranger Things Copy", Type: "TV Show", ReleaseYear: 2016, Director: "Shawn Levy", Cast: "Winona Ryder, David Harbour", ListedIn: "TV Dramas, TV Horror, TV Sci-Fi & Fantasy", Description: "When a young boy vanishes, a small town uncovers a mystery involving secret experiments."},
		{Title: "Dark", Type: "Movie", ReleaseYear: 2005, Director: "Someone Else", ListedIn: "Horror Movies", Description: "Unrelated film sharing a title."},
		{Title: "Empty", Type: "Movie", ReleaseYear: 2001, Director: "the", Cast: "and", ListedIn: "of", Description: ""},
	}
}

func newTestEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if _, built, err := e.Build(context.Background(), catalog.NewDataset(testItems(), "test")); err != nil || !built {
		t.Fatalf("Build() = built %v, err %v", built, err)
	}
	return e
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	clears  int
}

func newMapCache() *mapCache { return &mapCache{entries: map[string][]byte{}} }

func (c *mapCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *mapCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *mapCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string][]byte{}
	c.clears++
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limits.DefaultN = 0
	if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
		t.Error("NewEngine() should reject an invalid config")
	}
}

func TestEngine_NoModel(t *testing.T) {
	e, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Recommend(context.Background(), "x", 5); !errors.Is(err, ErrNoModel) {
		t.Errorf("Recommend() error = %v, want ErrNoModel", err)
	}
	if _, err := e.Suggest("x"); !errors.Is(err, ErrNoModel) {
		t.Errorf("Suggest() error = %v, want ErrNoModel", err)
	}
	if _, err := e.Catalog(); !errors.Is(err, ErrNoModel) {
		t.Errorf("Catalog() error = %v, want ErrNoModel", err)
	}
	if e.Status().Ready {
		t.Error("Status().Ready = true before any build")
	}
}

func TestRecommend_StrangerThings(t *testing.T) {
	e := newTestEngine(t, nil)

	recs, err := e.Recommend(context.Background(), "Stranger Things", 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 5 {
		t.Fatalf("len = %d, want 5", len(recs))
	}
	for i, r := range recs {
		if r.Title == "Stranger Things" {
			t.Errorf("result %d is the queried title", i)
		}
		if r.Rank != i+1 {
			t.Errorf("Rank = %d, want %d", r.Rank, i+1)
		}
		if i > 0 && r.Score > recs[i-1].Score {
			t.Errorf("scores increase at %d: %v > %v", i, r.Score, recs[i-1].Score)
		}
	}

	// The row with identical combined features ranks first with 1.0.
	if recs[0].Title != "Stranger Things Copy" || math.Abs(recs[0].Score-1) > 1e-9 {
		t.Errorf("first = %+v, want Stranger Things Copy with score 1.0", recs[0])
	}
}

func TestRecommend_ExcludesQueriedRowOnly(t *testing.T) {
	e := newTestEngine(t, nil)

	recs, err := e.Recommend(context.Background(), "Stranger Things Copy", 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != len(testItems())-1 {
		t.Fatalf("len = %d, want %d", len(recs), len(testItems())-1)
	}
	for _, r := range recs {
		if r.Index == 6 {
			t.Error("queried row returned")
		}
	}
	if recs[0].Title != "Stranger Things" {
		t.Errorf("first = %q, want Stranger Things", recs[0].Title)
	}
}

func TestRecommend_DuplicateTitleUsesFirstRow(t *testing.T) {
	e := newTestEngine(t, nil)

	recs, err := e.Recommend(context.Background(), "Dark", 50)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range recs {
		if r.Index == 1 {
			t.Error("row 1 is the resolved query row and must be excluded")
		}
	}
	found := false
	for _, r := range recs {
		if r.Index == 7 {
			found = true
		}
	}
	if !found {
		t.Error("second row titled Dark should be ranked like any other row")
	}
}

func TestRecommend_TiesKeepRowOrder(t *testing.T) {
	e := newTestEngine(t, nil)

	recs, err := e.Recommend(context.Background(), "Empty", 50)
	if err != nil {
		t.Fatal(err)
	}
	// Every score is 0 against a zero vector, so the ranking is row order.
	prev := -1
	for _, r := range recs {
		if r.Score != 0 {
			t.Errorf("score vs zero row = %v, want 0", r.Score)
		}
		if r.Index <= prev {
			t.Errorf("index %d after %d: ties must keep row order", r.Index, prev)
		}
		prev = r.Index
	}
}

func TestRecommend_RoundingAfterRanking(t *testing.T) {
	e := newTestEngine(t, nil)
	m := e.Model()

	idx, _ := m.IndexOf("Stranger Things")
	recs := m.Neighbors(idx, 50)
	row := m.Similarity().Row(idx)
	for i := 1; i < len(recs); i++ {
		if row[recs[i].Index] > row[recs[i-1].Index] {
			t.Errorf("unrounded order broken at %d", i)
		}
	}
	for _, r := range recs {
		if r.Score != math.Round(row[r.Index]*1000)/1000 {
			t.Errorf("score %v is not the 3-decimal rounding of %v", r.Score, row[r.Index])
		}
	}
}

func TestRecommend_NotFoundIsSoft(t *testing.T) {
	e := newTestEngine(t, nil)

	recs, err := e.Recommend(context.Background(), "Strnger Things", 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v, want nil", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("Recommend() = %#v, want empty slice", recs)
	}

	sugg, err := e.Suggest("Strnger Things")
	if err != nil {
		t.Fatal(err)
	}
	if len(sugg) == 0 || sugg[0] != "Stranger Things" || len(sugg) > 5 {
		t.Errorf("Suggest() = %v, want Stranger Things first and at most 5", sugg)
	}

	if got := e.GetMetrics().NotFound; got != 1 {
		t.Errorf("NotFound = %d, want 1", got)
	}
}

func TestRecommend_NNormalization(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limits.DefaultN = 3
	cfg.Limits.MaxN = 4
	e := newTestEngine(t, cfg)

	tests := []struct {
		n, want int
	}{
		{0, 3},
		{-2, 3},
		{2, 2},
		{10, 4},
	}
	for _, tt := range tests {
		recs, err := e.Recommend(context.Background(), "Stranger Things", tt.n)
		if err != nil {
			t.Fatal(err)
		}
		if len(recs) != tt.want {
			t.Errorf("n=%d: len = %d, want %d", tt.n, len(recs), tt.want)
		}
	}
}

func TestRecommend_Cache(t *testing.T) {
	e := newTestEngine(t, nil)
	c := newMapCache()
	e.SetCache(c)

	first, err := e.Recommend(context.Background(), "Stranger Things", 5)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Recommend(context.Background(), "Stranger Things", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) || first[0] != second[0] {
		t.Errorf("cached result differs: %+v vs %+v", first, second)
	}
	m := e.GetMetrics()
	if m.CacheHits != 1 || m.CacheMisses != 1 {
		t.Errorf("cache hits/misses = %d/%d, want 1/1", m.CacheHits, m.CacheMisses)
	}

	items := append(testItems(), catalog.Item{Title: "New Row", Type: "Movie", ReleaseYear: 2022})
	if _, built, err := e.Build(context.Background(), catalog.NewDataset(items, "changed")); err != nil || !built {
		t.Fatalf("Build() = %v, %v", built, err)
	}
	if c.clears != 1 {
		t.Errorf("cache cleared %d times, want 1", c.clears)
	}
}

func TestBuild_MemoizedByHash(t *testing.T) {
	e := newTestEngine(t, nil)
	first := e.Model()

	var calls int
	e.OnModelChange(func(_ context.Context, _, _ *Model) { calls++ })

	m, built, err := e.Build(context.Background(), catalog.NewDataset(testItems(), "same content"))
	if err != nil {
		t.Fatal(err)
	}
	if built || m != first {
		t.Error("identical dataset should reuse the served model")
	}
	if calls != 0 {
		t.Errorf("observers called %d times, want 0", calls)
	}
	if got := e.GetMetrics().MemoHits; got != 1 {
		t.Errorf("MemoHits = %d, want 1", got)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	ds := catalog.NewDataset(testItems(), "a")
	a, err := BuildModel(context.Background(), ds, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildModel(context.Background(), ds, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !a.Similarity().Equal(b.Similarity()) {
		t.Error("rebuilding from identical input changed the matrix")
	}
	if a.Status().VocabularySize != b.Status().VocabularySize {
		t.Error("vocabulary size changed between builds")
	}
}

func TestBuild_TooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limits.MaxRows = 3
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = e.Build(context.Background(), catalog.NewDataset(testItems(), "big"))
	if !errors.Is(err, ErrDatasetTooLarge) {
		t.Errorf("Build() error = %v, want ErrDatasetTooLarge", err)
	}
	if e.Model() != nil {
		t.Error("failed build must not publish a model")
	}
}

func TestBuild_FailureKeepsPreviousModel(t *testing.T) {
	e := newTestEngine(t, nil)
	prev := e.Model()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	items := append(testItems(), catalog.Item{Title: "Another", Type: "Movie", ReleaseYear: 2020})
	if _, _, err := e.Build(ctx, catalog.NewDataset(items, "x")); !errors.Is(err, context.Canceled) {
		t.Fatalf("Build() error = %v, want context.Canceled", err)
	}
	if e.Model() != prev {
		t.Error("served model changed after a failed build")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := catalog.WriteSample(f, 30, 1); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	e, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	var versions []int64
	e.OnModelChange(func(_ context.Context, _, cur *Model) { versions = append(versions, cur.Version()) })

	if _, built, err := e.LoadFile(context.Background(), path); err != nil || !built {
		t.Fatalf("LoadFile() = %v, %v", built, err)
	}
	if _, built, err := e.LoadFile(context.Background(), path); err != nil || built {
		t.Fatalf("second LoadFile() = %v, %v, want memo hit", built, err)
	}
	if len(versions) != 1 || versions[0] != 1 {
		t.Errorf("versions = %v, want [1]", versions)
	}

	items, err := e.Catalog()
	if err != nil || len(items) != 30 {
		t.Fatalf("Catalog() = %d items, %v", len(items), err)
	}

	_, _, err = e.LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	if !catalog.IsDataLoadError(err) {
		t.Errorf("LoadFile(missing) error = %v, want DataLoadError", err)
	}
	if e.Model().Version() != 1 {
		t.Error("failed load replaced the model")
	}
}

func TestLookup(t *testing.T) {
	e := newTestEngine(t, nil)

	it, ok, err := e.Lookup("Dark")
	if err != nil || !ok {
		t.Fatalf("Lookup() = %v, %v", ok, err)
	}
	if it.Index != 1 || it.ReleaseYear != 2017 {
		t.Errorf("Lookup(Dark) = %+v, want the first Dark row", it)
	}
	if _, ok, _ := e.Lookup("nope"); ok {
		t.Error("Lookup(nope) = true")
	}
}

func TestRecommend_Concurrent(t *testing.T) {
	e := newTestEngine(t, nil)
	e.SetCache(newMapCache())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			title := testItems()[i%len(testItems())].Title
			if _, err := e.Recommend(context.Background(), title, 3); err != nil {
				t.Errorf("Recommend(%q) error = %v", title, err)
			}
		}(i)
	}
	wg.Wait()
}
