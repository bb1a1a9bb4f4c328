// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reader implements paginated chapter reading.

A [Navigator] tracks the current chapter and page of one comic and moves
across chapter boundaries: past the last page it opens chapter n+1, before
the first page it opens chapter n-1 at its first page. Adjacency is strictly
number plus or minus one; a gap in numbering disables navigation in that
direction instead of skipping.

Reading positions survive between requests as sessions in Redis. Every save
carries the generation it was read at, so a slow request cannot overwrite a
newer position.
*/
package reader

import (
	"context"
	"errors"

	"github.com/taibuivan/komik/internal/core/chapter"
	"github.com/taibuivan/komik/internal/core/comic"
)

// Status is the lifecycle state of a [Navigator].
type Status string

const (
	StatusLoading   Status = "loading"
	StatusReady     Status = "ready"
	StatusNotFound  Status = "not_found"
	StatusLoadError Status = "load_error"
)

// Transition tells the caller what a navigation step changed.
type Transition string

const (
	TransitionPage    Transition = "page"
	TransitionChapter Transition = "chapter"
	TransitionNone    Transition = "none"
)

// ErrSuperseded is returned by a load whose result was discarded because a
// newer load on the same navigator started after it.
var ErrSuperseded = errors.New("reader: navigation superseded")

// Loader is the read side of the catalog used by the navigator.
type Loader interface {

	// FindComic resolves a comic by slug; NotFound when unknown.
	FindComic(context context.Context, slug string) (*comic.Comic, error)

	// ListChapters returns chapters ascending by chapter_number.
	ListChapters(context context.Context, comicID string) ([]*chapter.Chapter, error)

	// ListPages returns pages ascending by page_number.
	ListPages(context context.Context, chapterID string) ([]*chapter.Page, error)
}

// ComicSummary is the part of a comic the reader header needs.
type ComicSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	CoverURL string `json:"cover_url"`
}

// View is a snapshot of the navigator as rendered by clients.
type View struct {
	Status      Status           `json:"status"`
	Comic       *ComicSummary    `json:"comic,omitempty"`
	Chapter     *chapter.Chapter `json:"chapter,omitempty"`
	Pages       []*chapter.Page  `json:"pages"`
	PageIndex   int              `json:"page_index"`
	TotalPages  int              `json:"total_pages"`
	CanAdvance  bool             `json:"can_advance"`
	CanRetreat  bool             `json:"can_retreat"`
	PrevChapter *int             `json:"prev_chapter"`
	NextChapter *int             `json:"next_chapter"`
	Error       string           `json:"error,omitempty"`
}

// Position is the persisted part of a reading session.
type Position struct {
	SessionID     string `json:"session_id"`
	Slug          string `json:"slug"`
	ChapterNumber int    `json:"chapter_number"`
	PageIndex     int    `json:"page_index"`
	Generation    uint64 `json:"generation"`
}
