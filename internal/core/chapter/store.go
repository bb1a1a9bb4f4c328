// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import "context"

// Repository defines the data access contract for chapters and pages.
type Repository interface {

	// ListByComic returns the chapters of a comic ordered by chapter_number ascending.
	ListByComic(context context.Context, comicID string) ([]*Chapter, error)

	FindByID(context context.Context, id string) (*Chapter, error)

	/*
		Create inserts a chapter.

		Returns:
		  - error: Conflict when the number is taken, NotFound when the comic is missing
	*/
	Create(context context.Context, chapter *Chapter) error

	Update(context context.Context, chapter *Chapter) error

	// Delete removes a chapter; its pages cascade.
	Delete(context context.Context, id string) error

	// ListPages returns the pages of a chapter ordered by page_number ascending.
	ListPages(context context.Context, chapterID string) ([]*Page, error)

	// LastPageNumber returns the highest page_number of a chapter, 0 when empty.
	LastPageNumber(context context.Context, chapterID string) (int, error)

	// InsertPages bulk-inserts an upload batch in one transaction.
	InsertPages(context context.Context, pages []*Page) error

	// DeletePage removes a page row and returns it so its object can be removed too.
	DeletePage(context context.Context, id string) (*Page, error)
}
