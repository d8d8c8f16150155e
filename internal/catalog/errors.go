// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel causes wrapped by DataLoadError.
var (
	ErrFileMissing    = errors.New("dataset file missing")
	ErrMissingColumns = errors.New("dataset missing required columns")
	ErrMalformed      = errors.New("dataset malformed")
	ErrEmpty          = errors.New("dataset has no rows")
)

// DataLoadError reports why a dataset could not be loaded. It is fatal at
// startup.
type DataLoadError struct {
	Source  string
	Line    int      // 1-based file line, 0 when not line specific
	Columns []string // missing columns for ErrMissingColumns
	Err     error
}

func (e *DataLoadError) Error() string {
	var b strings.Builder
	b.WriteString("load dataset ")
	b.WriteString(e.Source)
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	if len(e.Columns) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Columns, ", "))
		b.WriteString("]")
	}
	return b.String()
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// IsDataLoadError reports whether err is or wraps a *DataLoadError.
func IsDataLoadError(err error) bool {
	var dle *DataLoadError
	return errors.As(err, &dle)
}
