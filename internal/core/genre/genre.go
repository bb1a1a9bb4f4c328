// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package genre manages the flat list of genres comics are filed under.

The public listing also returns the "Semua" selector so clients can render the
"all genres" chip without hard-coding it.
*/
package genre

import (
	"strings"

	"github.com/taibuivan/komik/internal/platform/constants"
)

// Field names used in validation errors.
const (
	FieldName = "name"
	FieldSlug = "slug"
)

// Genre is a catalog category such as "Action" or "Sci-Fi".
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Matches reports whether selector names this genre by name or slug, ignoring case.
func (genre Genre) Matches(selector string) bool {
	return strings.EqualFold(genre.Name, selector) || strings.EqualFold(genre.Slug, selector)
}

// IsAll reports whether the selector disables genre filtering.
func IsAll(selector string) bool {
	selector = strings.TrimSpace(selector)
	return selector == "" || strings.EqualFold(selector, constants.GenreAll)
}
