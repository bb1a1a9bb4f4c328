// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"context"
	"sync"

	"github.com/taibuivan/komik/internal/core/chapter"
	"github.com/taibuivan/komik/internal/core/comic"
	"github.com/taibuivan/komik/internal/platform/apperr"
	"github.com/taibuivan/komik/pkg/pointer"
)

// target identifies the chapter a load is heading for.
type target struct {
	slug          string
	chapterNumber int
}

// snapshot is the result of one load, committed as a whole or not at all.
type snapshot struct {
	comic    *comic.Comic
	chapters []*chapter.Chapter
	current  *chapter.Chapter
	pages    []*chapter.Page
}

/*
Navigator is the reading state machine for one comic.

Loads run without holding the lock. Each load takes a generation number when
it starts and commits only if no newer load started meanwhile, so a slow
response can never replace the result of a later navigation.
*/
type Navigator struct {
	loader Loader

	mu         sync.Mutex
	generation uint64
	target     target
	state      snapshot
	pageIndex  int
	status     Status
	err        error
}

// NewNavigator returns an idle navigator; call [Navigator.Open] first.
func NewNavigator(loader Loader) *Navigator {
	return &Navigator{loader: loader, status: StatusLoading}
}

/*
Open initializes the navigator on a chapter of the comic identified by slug.

Description: Resolves the comic, loads its chapters, picks the one numbered
chapterNumber and loads its pages. The page index starts at 0.

Returns:
  - error: NotFound for an unknown comic, chapter or a chapter without pages;
    Remote for any other store failure; [ErrSuperseded] if a newer load won
*/
func (navigator *Navigator) Open(context context.Context, slug string, chapterNumber int) error {
	return navigator.load(context, target{slug: slug, chapterNumber: chapterNumber}, nil)
}

// Reload re-runs initialization for the current chapter; the retry action after a load error.
func (navigator *Navigator) Reload(context context.Context) error {
	navigator.mu.Lock()
	current := navigator.target
	navigator.mu.Unlock()

	return navigator.load(context, current, nil)
}

/*
Advance moves one page forward.

On the last page it opens the chapter numbered current+1 when it exists.
Otherwise, or while not ready, nothing changes.
*/
func (navigator *Navigator) Advance(context context.Context) (Transition, error) {
	return navigator.step(context, +1)
}

/*
Retreat moves one page back.

On the first page it opens the chapter numbered current-1 at its first page.
Otherwise, or while not ready, nothing changes.
*/
func (navigator *Navigator) Retreat(context context.Context) (Transition, error) {
	return navigator.step(context, -1)
}

// CanAdvance reports whether [Navigator.Advance] would change anything.
func (navigator *Navigator) CanAdvance() bool {
	navigator.mu.Lock()
	defer navigator.mu.Unlock()
	return navigator.canMove(+1)
}

// CanRetreat reports whether [Navigator.Retreat] would change anything.
func (navigator *Navigator) CanRetreat() bool {
	navigator.mu.Lock()
	defer navigator.mu.Unlock()
	return navigator.canMove(-1)
}

// Status returns the lifecycle state.
func (navigator *Navigator) Status() Status {
	navigator.mu.Lock()
	defer navigator.mu.Unlock()
	return navigator.status
}

// Err returns the error of the last failed load, or nil.
func (navigator *Navigator) Err() error {
	navigator.mu.Lock()
	defer navigator.mu.Unlock()
	return navigator.err
}

// Seek moves to pageIndex within the loaded chapter, clamped to its bounds.
func (navigator *Navigator) Seek(pageIndex int) {
	navigator.mu.Lock()
	defer navigator.mu.Unlock()

	if navigator.status != StatusReady {
		return
	}
	navigator.pageIndex = max(0, min(pageIndex, len(navigator.state.pages)-1))
}

// Position returns the persisted form of the current reading position.
func (navigator *Navigator) Position() Position {
	navigator.mu.Lock()
	defer navigator.mu.Unlock()

	return Position{
		Slug:          navigator.target.slug,
		ChapterNumber: navigator.target.chapterNumber,
		PageIndex:     navigator.pageIndex,
	}
}

// View renders the current state.
func (navigator *Navigator) View() *View {
	navigator.mu.Lock()
	defer navigator.mu.Unlock()

	view := &View{
		Status:     navigator.status,
		Pages:      []*chapter.Page{},
		PageIndex:  navigator.pageIndex,
		CanAdvance: navigator.canMove(+1),
		CanRetreat: navigator.canMove(-1),
	}

	if navigator.err != nil {
		view.Error = navigator.err.Error()
	}

	if navigator.status != StatusReady {
		return view
	}

	loaded := navigator.state
	view.Comic = &ComicSummary{
		ID:       loaded.comic.ID,
		Title:    loaded.comic.Title,
		Slug:     loaded.comic.Slug,
		CoverURL: loaded.comic.CoverURL,
	}
	view.Chapter = loaded.current
	view.Pages = loaded.pages
	view.TotalPages = len(loaded.pages)

	if previous := navigator.adjacent(-1); previous != nil {
		view.PrevChapter = pointer.To(previous.ChapterNumber)
	}
	if next := navigator.adjacent(+1); next != nil {
		view.NextChapter = pointer.To(next.ChapterNumber)
	}
	return view
}

// # State Transitions

func (navigator *Navigator) step(context context.Context, direction int) (Transition, error) {
	navigator.mu.Lock()

	if navigator.status != StatusReady {
		navigator.mu.Unlock()
		return TransitionNone, nil
	}

	// ── 1. Within the chapter ─────────────────────────────────────────────
	nextIndex := navigator.pageIndex + direction
	if nextIndex >= 0 && nextIndex < len(navigator.state.pages) {
		navigator.pageIndex = nextIndex
		navigator.mu.Unlock()
		return TransitionPage, nil
	}

	// ── 2. Across the chapter boundary ────────────────────────────────────
	neighbour := navigator.adjacent(direction)
	if neighbour == nil {
		navigator.mu.Unlock()
		return TransitionNone, nil
	}

	next := target{slug: navigator.target.slug, chapterNumber: neighbour.ChapterNumber}
	loadedComic := navigator.state.comic
	navigator.mu.Unlock()

	if err := navigator.load(context, next, loadedComic); err != nil {
		return TransitionNone, err
	}
	return TransitionChapter, nil
}

/*
load runs initialization steps against the loader and commits the result.

When known is set the comic lookup is skipped; chapter transitions reuse the
comic already on screen.
*/
func (navigator *Navigator) load(context context.Context, next target, known *comic.Comic) error {
	navigator.mu.Lock()
	navigator.generation++
	generation := navigator.generation
	navigator.target = next
	navigator.status = StatusLoading
	navigator.err = nil
	navigator.mu.Unlock()

	loaded, err := navigator.fetch(context, next, known)

	navigator.mu.Lock()
	defer navigator.mu.Unlock()

	if generation != navigator.generation {
		return ErrSuperseded
	}

	if err != nil {
		navigator.state = snapshot{}
		navigator.pageIndex = 0
		navigator.err = err
		navigator.status = StatusLoadError
		if apperr.IsNotFound(err) {
			navigator.status = StatusNotFound
		}
		return err
	}

	navigator.state = *loaded
	navigator.pageIndex = 0
	navigator.status = StatusReady
	return nil
}

func (navigator *Navigator) fetch(context context.Context, next target, known *comic.Comic) (*snapshot, error) {
	loaded := &snapshot{comic: known}

	// ── 1. Comic ──────────────────────────────────────────────────────────
	if loaded.comic == nil {
		found, err := navigator.loader.FindComic(context, next.slug)
		if err != nil {
			return nil, classify(err)
		}
		loaded.comic = found
	}

	// ── 2. Chapter list, then the requested chapter ───────────────────────
	chapters, err := navigator.loader.ListChapters(context, loaded.comic.ID)
	if err != nil {
		return nil, classify(err)
	}
	loaded.chapters = chapters

	for _, candidate := range chapters {
		if candidate.ChapterNumber == next.chapterNumber {
			loaded.current = candidate
			break
		}
	}
	if loaded.current == nil {
		return nil, apperr.NotFound("chapter")
	}

	// ── 3. Pages ──────────────────────────────────────────────────────────
	pages, err := navigator.loader.ListPages(context, loaded.current.ID)
	if err != nil {
		return nil, classify(err)
	}
	if len(pages) == 0 {
		return nil, apperr.NotFound("chapter pages")
	}
	loaded.pages = pages

	return loaded, nil
}

// # Helpers

// canMove must be called with the lock held.
func (navigator *Navigator) canMove(direction int) bool {
	if navigator.status != StatusReady {
		return false
	}

	nextIndex := navigator.pageIndex + direction
	if nextIndex >= 0 && nextIndex < len(navigator.state.pages) {
		return true
	}
	return navigator.adjacent(direction) != nil
}

// adjacent returns the chapter numbered current+direction; must be called with the lock held.
func (navigator *Navigator) adjacent(direction int) *chapter.Chapter {
	if navigator.state.current == nil {
		return nil
	}

	wanted := navigator.state.current.ChapterNumber + direction
	for _, candidate := range navigator.state.chapters {
		if candidate.ChapterNumber == wanted {
			return candidate
		}
	}
	return nil
}

// classify keeps NotFound terminal and turns every other failure into a retryable Remote error.
func classify(err error) error {
	if apperr.IsNotFound(err) {
		return err
	}
	return apperr.Remote("reader load", err)
}
