// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// ContentHash returns the hex BLAKE2b-256 digest of data.
func ContentHash(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// fingerprint serializes the fields that influence the model and the
// display so in-memory datasets get a stable hash.
func fingerprint(items []Item) string {
	var b strings.Builder
	for i := range items {
		it := &items[i]
		for _, f := range []string{
			it.Title, it.Type, strconv.Itoa(it.ReleaseYear), it.Director,
			it.Cast, it.ListedIn, it.Country, it.Description,
		} {
			b.WriteString(strconv.Quote(f))
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
