// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/fuzzy"
	"github.com/tomtom215/cinematch/internal/recommend"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatRecommendations(w io.Writer, title string, recs []recommend.Recommendation) error {
	fmt.Fprintf(w, "Because you watched %q:\n\n", title)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tTITLE\tTYPE\tYEAR\tSCORE")
	for _, r := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.3f\n", r.Rank, r.Title, r.Type, r.ReleaseYear, r.Score)
	}
	return tw.Flush()
}

func formatSuggestions(w io.Writer, query string, matches []fuzzy.Match) {
	if len(matches) == 0 {
		fmt.Fprintf(w, "No title matches %q.\n", query)
		return
	}
	titles := make([]string, len(matches))
	for i, m := range matches {
		titles[i] = m.Title
	}
	fmt.Fprintf(w, "%q not found. Did you mean: %s?\n", query, strings.Join(titles, ", "))
}
