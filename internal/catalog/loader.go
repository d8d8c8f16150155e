// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// Column names.
const (
	ColShowID      = "show_id"
	ColTitle       = "title"
	ColType        = "type"
	ColReleaseYear = "release_year"
	ColDirector    = "director"
	ColCast        = "cast"
	ColListedIn    = "listed_in"
	ColDescription = "description"
	ColCountry     = "country"
	ColDateAdded   = "date_added"
	ColRating      = "rating"
	ColDuration    = "duration"
)

// RequiredColumns must all be present in the header.
var RequiredColumns = []string{
	ColTitle, ColType, ColReleaseYear, ColDirector,
	ColCast, ColListedIn, ColDescription, ColCountry,
}

// Load reads the CSV at path.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		cause := ErrMalformed
		if errors.Is(err, fs.ErrNotExist) {
			cause = ErrFileMissing
		}
		return nil, &DataLoadError{Source: path, Err: fmt.Errorf("%w: %v", cause, err)}
	}
	return parse(data, path)
}

// LoadReader reads a CSV from r. name is used in errors and as Source.
func LoadReader(r io.Reader, name string) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DataLoadError{Source: name, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	return parse(data, name)
}

func parse(data []byte, source string) (*Dataset, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = false

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &DataLoadError{Source: source, Err: ErrEmpty}
	}
	if err != nil {
		return nil, &DataLoadError{Source: source, Line: 1, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}

	cols, missing := indexHeader(header)
	if len(missing) > 0 {
		return nil, &DataLoadError{Source: source, Line: 1, Columns: missing, Err: ErrMissingColumns}
	}

	report := LoadReport{Fills: make(map[string]int)}
	items := make([]Item, 0, 1024)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			line := 0
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, &DataLoadError{Source: source, Line: line, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
		}
		line, _ := r.FieldPos(0)
		report.RowsRead++

		get := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}

		it := Item{
			ShowID:      get(ColShowID),
			Title:       get(ColTitle),
			Type:        get(ColType),
			Director:    get(ColDirector),
			Cast:        get(ColCast),
			ListedIn:    get(ColListedIn),
			Country:     get(ColCountry),
			Description: get(ColDescription),
			DateAdded:   strings.TrimSpace(get(ColDateAdded)),
			Rating:      strings.TrimSpace(get(ColRating)),
			Duration:    strings.TrimSpace(get(ColDuration)),
		}

		// Rows without a title can never be looked up and would all
		// collide on the empty key.
		if strings.TrimSpace(it.Title) == "" {
			report.SkippedRows = append(report.SkippedRows, line)
			continue
		}

		year, err := parseYear(get(ColReleaseYear))
		if err != nil {
			return nil, &DataLoadError{Source: source, Line: line, Columns: []string{ColReleaseYear}, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
		}
		it.ReleaseYear = year

		applyFills(&it, report.Fills)
		items = append(items, it)
	}

	if len(items) == 0 {
		return nil, &DataLoadError{Source: source, Err: ErrEmpty}
	}
	return newDataset(items, ContentHash(data), source, report), nil
}

// indexHeader maps normalized column names to positions and lists the
// required columns that are absent.
func indexHeader(header []string) (map[string]int, []string) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	return cols, missing
}

func parseYear(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.New("release_year is empty")
	}
	// Spreadsheet exports sometimes write integral years as "2019.0".
	s = strings.TrimSuffix(s, ".0")
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("release_year %q is not an integer", raw)
	}
	return year, nil
}

// applyFills replaces missing values with their sentinels and counts the
// fills per column.
func applyFills(it *Item, fills map[string]int) {
	fill := func(col string, v *string, sentinel string) {
		if *v == "" {
			*v = sentinel
			fills[col]++
		}
	}
	fill(ColType, &it.Type, UnknownValue)
	fill(ColDirector, &it.Director, UnknownValue)
	fill(ColCast, &it.Cast, UnknownValue)
	fill(ColListedIn, &it.ListedIn, UnknownValue)
	fill(ColCountry, &it.Country, UnknownValue)
	fill(ColDescription, &it.Description, EmptyValue)
}
