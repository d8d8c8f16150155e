// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"time"
)

// Sentinel fill values for missing fields.
const (
	UnknownValue = "Unknown"
	EmptyValue   = ""
)

// Item is one catalog row.
type Item struct {
	Index       int    `json:"index"`
	ShowID      string `json:"show_id,omitempty"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	ReleaseYear int    `json:"release_year"`
	Director    string `json:"director"`
	Cast        string `json:"cast"`
	ListedIn    string `json:"listed_in"`
	Country     string `json:"country"`
	Description string `json:"description"`
	DateAdded   string `json:"date_added,omitempty"`
	Rating      string `json:"rating,omitempty"`
	Duration    string `json:"duration,omitempty"`

	// CombinedFeatures is director, cast, listed_in and description joined
	// by single spaces.
	CombinedFeatures string `json:"-"`
}

func combineFeatures(it *Item) string {
	return it.Director + " " + it.Cast + " " + it.ListedIn + " " + it.Description
}

// LoadReport summarizes what the loader did to the raw rows.
type LoadReport struct {
	RowsRead    int            `json:"rows_read"`
	RowsLoaded  int            `json:"rows_loaded"`
	SkippedRows []int          `json:"skipped_rows,omitempty"` // 1-based file lines with no title
	Fills       map[string]int `json:"fills"`                  // column -> sentinel fills applied
}

// Dataset is an ordered, read-only catalog.
type Dataset struct {
	items    []Item
	byTitle  map[string]int
	hash     string
	source   string
	loadedAt time.Time
	report   LoadReport
}

func newDataset(items []Item, hash, source string, report LoadReport) *Dataset {
	byTitle := make(map[string]int, len(items))
	for i := range items {
		items[i].Index = i
		items[i].CombinedFeatures = combineFeatures(&items[i])
		// First row wins for duplicate titles.
		if _, seen := byTitle[items[i].Title]; !seen {
			byTitle[items[i].Title] = i
		}
	}
	report.RowsLoaded = len(items)
	return &Dataset{
		items:    items,
		byTitle:  byTitle,
		hash:     hash,
		source:   source,
		loadedAt: time.Now().UTC(),
		report:   report,
	}
}

// NewDataset builds a Dataset from already-parsed items. Missing fields are
// filled the same way Load fills them. Intended for tests and generators.
func NewDataset(items []Item, source string) *Dataset {
	cp := make([]Item, len(items))
	copy(cp, items)
	report := LoadReport{RowsRead: len(cp), Fills: map[string]int{}}
	for i := range cp {
		applyFills(&cp[i], report.Fills)
	}
	return newDataset(cp, ContentHash([]byte(fingerprint(cp))), source, report)
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.items) }

// Items returns the rows in file order. The slice must not be modified.
func (d *Dataset) Items() []Item { return d.items }

// Item returns row i.
func (d *Dataset) Item(i int) Item { return d.items[i] }

// Hash returns the content hash of the source bytes.
func (d *Dataset) Hash() string { return d.hash }

// Source returns the path or name the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// LoadedAt returns when the dataset was parsed.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Report returns the load report.
func (d *Dataset) Report() LoadReport { return d.report }

// IndexOf returns the index of the first row whose title equals title
// exactly. Duplicate titles resolve to the lowest row index.
func (d *Dataset) IndexOf(title string) (int, bool) {
	i, ok := d.byTitle[title]
	return i, ok
}

// Titles returns every title in row order, duplicates included.
func (d *Dataset) Titles() []string {
	out := make([]string, len(d.items))
	for i := range d.items {
		out[i] = d.items[i].Title
	}
	return out
}

// Features returns CombinedFeatures for every row in row order.
func (d *Dataset) Features() []string {
	out := make([]string, len(d.items))
	for i := range d.items {
		out[i] = d.items[i].CombinedFeatures
	}
	return out
}
