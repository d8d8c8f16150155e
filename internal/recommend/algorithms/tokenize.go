// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"strings"
	"unicode"
)

// minTokenRunes is the shortest run of word characters kept as a token.
const minTokenRunes = 2

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Tokenize lowercases text and splits it into maximal runs of word
// characters (letters, numbers, underscore) at least two runes long.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	tokens := make([]string, 0, len(lower)/6)
	start, runes := -1, 0
	for i, r := range lower {
		if isWordRune(r) {
			if start < 0 {
				start, runes = i, 0
			}
			runes++
			continue
		}
		if start >= 0 && runes >= minTokenRunes {
			tokens = append(tokens, lower[start:i])
		}
		start = -1
	}
	if start >= 0 && runes >= minTokenRunes {
		tokens = append(tokens, lower[start:])
	}
	return tokens
}

// analyze tokenizes text and drops stop words.
func analyze(text string, stop map[string]struct{}) []string {
	tokens := Tokenize(text)
	if len(stop) == 0 {
		return tokens
	}
	kept := tokens[:0]
	for _, t := range tokens {
		if _, ok := stop[t]; !ok {
			kept = append(kept, t)
		}
	}
	return kept
}
