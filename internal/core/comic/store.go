// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import "context"

// # Comic Data Access

// Repository defines the data access contract for the catalog.
type Repository interface {

	// ListAll returns every comic with its genres, newest first.
	ListAll(context context.Context) ([]*Comic, error)

	// ListLatest returns at most limit comics with their genres, newest first.
	ListLatest(context context.Context, limit int) ([]*Comic, error)

	/*
		FindFeatured returns the comic shown in the hero banner.

		Returns:
		  - error: NotFound when no comic is featured
	*/
	FindFeatured(context context.Context) (*Comic, error)

	FindByID(context context.Context, id string) (*Comic, error)

	FindBySlug(context context.Context, slug string) (*Comic, error)

	/*
		Create inserts a comic and, when GenreIDs is set, its genre associations
		in the same transaction.

		Returns:
		  - error: Conflict on a duplicate slug, Validation on an unknown genre id
	*/
	Create(context context.Context, comic *Comic) error

	// Update replaces the mutable fields; GenreIDs nil keeps the associations.
	Update(context context.Context, comic *Comic) error

	// Delete removes a comic; chapters, pages and associations cascade.
	Delete(context context.Context, id string) error

	// SetGenres replaces the genre association set of a comic.
	SetGenres(context context.Context, comicID string, genreIDs []int) error

	/*
		SetFeatured changes the featured flag of a comic.

		Setting it clears the flag on every other comic first; both writes
		commit together or not at all.
	*/
	SetFeatured(context context.Context, id string, featured bool) error

	UpdateCover(context context.Context, id, coverURL string) error
}
