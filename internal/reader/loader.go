// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"context"

	"github.com/taibuivan/komik/internal/core/chapter"
	"github.com/taibuivan/komik/internal/core/comic"
)

// CatalogLoader reads comics, chapters and pages through the catalog services.
type CatalogLoader struct {
	comics   *comic.Service
	chapters *chapter.Service
}

// NewCatalogLoader adapts the catalog services to [Loader].
func NewCatalogLoader(comics *comic.Service, chapters *chapter.Service) *CatalogLoader {
	return &CatalogLoader{comics: comics, chapters: chapters}
}

func (loader *CatalogLoader) FindComic(context context.Context, slug string) (*comic.Comic, error) {
	return loader.comics.FindBySlug(context, slug)
}

func (loader *CatalogLoader) ListChapters(context context.Context, comicID string) ([]*chapter.Chapter, error) {
	return loader.chapters.ListByComic(context, comicID)
}

func (loader *CatalogLoader) ListPages(context context.Context, chapterID string) ([]*chapter.Page, error) {
	return loader.chapters.ListPages(context, chapterID)
}
