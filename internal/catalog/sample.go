// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/jaswdr/faker"
)

var sampleGenres = []string{
	"Dramas", "Comedies", "Documentaries", "International Movies",
	"Action & Adventure", "Thrillers", "Horror Movies", "Romantic Movies",
	"Sci-Fi & Fantasy", "Kids' TV", "TV Dramas", "Crime TV Shows",
	"Docuseries", "Stand-Up Comedy", "Anime Series", "Reality TV",
}

// SampleHeader is the column order written by WriteSample.
var SampleHeader = []string{
	ColShowID, ColType, ColTitle, ColDirector, ColCast, ColCountry,
	ColDateAdded, ColReleaseYear, ColRating, ColDuration, ColListedIn, ColDescription,
}

// SampleItems generates n synthetic rows. The same seed always yields the
// same rows. Roughly one row in ten leaves director or country empty so the
// fill path is exercised.
func SampleItems(n int, seed int64) []Item {
	fake := faker.NewWithSeed(rand.NewSource(seed))
	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		kind := "Movie"
		duration := strconv.Itoa(fake.IntBetween(70, 180)) + " min"
		if fake.IntBetween(0, 2) == 0 {
			kind = "TV Show"
			duration = strconv.Itoa(fake.IntBetween(1, 6)) + " Seasons"
		}

		cast := make([]string, fake.IntBetween(1, 4))
		for c := range cast {
			cast[c] = fake.Person().Name()
		}

		genres := map[string]bool{}
		for g := fake.IntBetween(1, 3); len(genres) < g; {
			genres[fake.RandomStringElement(sampleGenres)] = true
		}
		listed := make([]string, 0, len(genres))
		for _, g := range sampleGenres {
			if genres[g] {
				listed = append(listed, g)
			}
		}

		it := Item{
			ShowID:      "s" + strconv.Itoa(i+1),
			Title:       titleCase(fake.Lorem().Words(fake.IntBetween(1, 4))) + " " + strconv.Itoa(i+1),
			Type:        kind,
			ReleaseYear: fake.IntBetween(1960, 2021),
			Cast:        strings.Join(cast, ", "),
			ListedIn:    strings.Join(listed, ", "),
			Description: fake.Lorem().Sentence(fake.IntBetween(8, 20)),
			Rating:      fake.RandomStringElement([]string{"TV-MA", "TV-14", "PG-13", "R", "TV-PG"}),
			Duration:    duration,
		}
		if fake.IntBetween(0, 9) > 0 {
			it.Director = fake.Person().Name()
		}
		if fake.IntBetween(0, 9) > 0 {
			it.Country = fake.Address().Country()
		}
		items = append(items, it)
	}
	return items
}

// WriteSample writes n synthetic rows as CSV to w.
func WriteSample(w io.Writer, n int, seed int64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SampleHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, it := range SampleItems(n, seed) {
		rec := []string{
			it.ShowID, it.Type, it.Title, it.Director, it.Cast, it.Country,
			it.DateAdded, strconv.Itoa(it.ReleaseYear), it.Rating, it.Duration, it.ListedIn, it.Description,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %s: %w", it.ShowID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func titleCase(words []string) string {
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
