// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"strings"

	"github.com/taibuivan/komik/internal/core/genre"
	"github.com/taibuivan/komik/pkg/slice"
)

/*
Filter narrows a catalog listing by genre selector and title search.

A comic is kept when the selector is "Semua" (or empty) or names one of its
genres, and its lowercased title contains the lowercased search text. The
input order is preserved and an empty match is an empty, non-nil slice.
*/
func Filter(comics []*Comic, genreSelector, search string) []*Comic {
	allGenres := genre.IsAll(genreSelector)
	needle := strings.ToLower(search)

	return slice.Filter(comics, func(comic *Comic) bool {
		if !allGenres && !comic.HasGenre(genreSelector) {
			return false
		}
		return strings.Contains(strings.ToLower(comic.Title), needle)
	})
}
