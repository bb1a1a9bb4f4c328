// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/komik/internal/core/comic"
	"github.com/taibuivan/komik/internal/core/genre"
)

var (
	action  = genre.Genre{ID: 1, Name: "Action", Slug: "action"}
	romance = genre.Genre{ID: 2, Name: "Romance", Slug: "romance"}
	scifi   = genre.Genre{ID: 4, Name: "Sci-Fi", Slug: "sci-fi"}
)

func catalog() []*comic.Comic {
	return []*comic.Comic{
		{ID: "c1", Title: "Galactic Warriors", Genres: []genre.Genre{action, scifi}},
		{ID: "c2", Title: "Cinta di Musim Hujan", Genres: []genre.Genre{romance}},
		{ID: "c3", Title: "Pedang Terakhir", Genres: []genre.Genre{action}},
		{ID: "c4", Title: "Tanpa Genre"},
	}
}

func ids(comics []*comic.Comic) []string {
	result := make([]string, 0, len(comics))
	for _, c := range comics {
		result = append(result, c.ID)
	}
	return result
}

/*
TestFilter covers the genre selector and the title search together.
*/
func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		search   string
		want     []string
	}{
		{"all with empty search returns everything", "Semua", "", []string{"c1", "c2", "c3", "c4"}},
		{"empty selector means all", "", "", []string{"c1", "c2", "c3", "c4"}},
		{"selector is case-insensitive", "semua", "", []string{"c1", "c2", "c3", "c4"}},
		{"genre by name", "Action", "", []string{"c1", "c3"}},
		{"genre by slug ignoring case", "SCI-FI", "", []string{"c1"}},
		{"title substring ignoring case", "Semua", "galac", []string{"c1"}},
		{"genre and search combine", "Action", "pedang", []string{"c3"}},
		{"genre and search disjoint", "Romance", "galac", []string{}},
		{"unknown genre", "Horror", "", []string{}},
		{"search is not trimmed", "Semua", " galac", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := comic.Filter(catalog(), tt.selector, tt.search)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

/*
TestFilter_EmptyCatalog returns an empty list rather than nil.
*/
func TestFilter_EmptyCatalog(t *testing.T) {
	got := comic.Filter(nil, "Action", "x")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

/*
TestStatus_IsValid accepts only the three publication states.
*/
func TestStatus_IsValid(t *testing.T) {
	assert.True(t, comic.StatusOngoing.IsValid())
	assert.True(t, comic.StatusCompleted.IsValid())
	assert.True(t, comic.StatusHiatus.IsValid())
	assert.False(t, comic.Status("cancelled").IsValid())
}
