// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comic defines the catalog: comics, their genre associations and the
single featured comic shown in the hero banner.

Core Responsibility:

  - Catalogue: title, slug, credits, rating and publication status.
  - Discovery: genre selector plus title search, latest and featured listings.
  - Administration: CRUD, genre sync, cover upload and the featured toggle.
*/
package comic

import (
	"time"

	"github.com/taibuivan/komik/internal/core/chapter"
	"github.com/taibuivan/komik/internal/core/genre"
)

// # Domain Enums

// Status represents the publication status of a comic.
type Status string

const (
	// StatusOngoing indicates the publication is actively updating.
	StatusOngoing Status = "ongoing"

	// StatusCompleted indicates no further chapters are expected.
	StatusCompleted Status = "completed"

	// StatusHiatus indicates the publication is paused.
	StatusHiatus Status = "hiatus"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusHiatus:
		return true
	}
	return false
}

// # Core Entities

// Comic is the central aggregate of the catalog.
type Comic struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"` // URL-safe identifier
	Description string        `json:"description"`
	Author      string        `json:"author"`
	Artist      string        `json:"artist"`
	CoverURL    string        `json:"cover_url"`
	Rating      float64       `json:"rating"` // 0 to 5, one decimal
	Status      Status        `json:"status"`
	IsFeatured  bool          `json:"is_featured"`
	Genres      []genre.Genre `json:"genres"`

	// GenreIDs is input only; nil leaves the associations untouched on update.
	GenreIDs []int `json:"genre_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasGenre reports whether any associated genre matches selector.
func (comic *Comic) HasGenre(selector string) bool {
	for _, associated := range comic.Genres {
		if associated.Matches(selector) {
			return true
		}
	}
	return false
}

// Detail is a comic together with its chapters in reading order.
type Detail struct {
	*Comic
	Chapters []*chapter.Chapter `json:"chapters"`
}

// # Field Identifiers

// Field names for validation errors and request bodies.
const (
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldAuthor      = "author"
	FieldArtist      = "artist"
	FieldRating      = "rating"
	FieldStatus      = "status"
	FieldGenreIDs    = "genre_ids"
	FieldFile        = "file"
)
