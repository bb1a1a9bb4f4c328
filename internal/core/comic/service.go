// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/taibuivan/komik/internal/core/chapter"
	"github.com/taibuivan/komik/internal/platform/constants"
	"github.com/taibuivan/komik/internal/platform/events"
	"github.com/taibuivan/komik/internal/platform/storage"
	"github.com/taibuivan/komik/internal/platform/validate"
	"github.com/taibuivan/komik/pkg/pagination"
	"github.com/taibuivan/komik/pkg/slug"
	"github.com/taibuivan/komik/pkg/uuid"
)

const (
	maxTitleLength = 255
	maxRating      = 5.0
)

// ChapterLister loads the chapters of a comic in reading order; satisfied by [*chapter.Service].
type ChapterLister interface {
	ListByComic(context context.Context, comicID string) ([]*chapter.Chapter, error)
}

// # Service Layer

// Service orchestrates the catalog views and comic administration.
type Service struct {
	repo        Repository
	chapters    ChapterLister
	uploader    storage.Uploader
	coverBucket string
	publisher   events.Publisher
	logger      *slog.Logger
	now         func() time.Time
}

// NewService constructs a comic [Service] that stores covers in coverBucket.
func NewService(repo Repository, chapters ChapterLister, uploader storage.Uploader, coverBucket string, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		chapters:    chapters,
		uploader:    uploader,
		coverBucket: coverBucket,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

// # Catalog Views

/*
Browse returns one page of the catalog narrowed by genre and title search.

Description: The full listing is loaded newest first and narrowed with
[Filter], so the selector and search semantics are identical to the pure
function. The page window is cut after filtering.

Returns:
  - []*Comic: The requested page, never nil
  - int: Number of comics matching before pagination
  - error: Store failures
*/
func (service *Service) Browse(context context.Context, genreSelector, search string, params pagination.Params) ([]*Comic, int, error) {
	comics, err := service.repo.ListAll(context)
	if err != nil {
		return nil, 0, err
	}

	matched := Filter(comics, genreSelector, search)
	return pagination.Window(matched, params), len(matched), nil
}

// Latest returns the newest comics; a non-positive limit means the home page size.
func (service *Service) Latest(context context.Context, limit int) ([]*Comic, error) {
	return service.repo.ListLatest(context, pagination.ClampLimit(limit, constants.LatestComicsLimit))
}

// Featured returns the hero banner comic, or NotFound when none is featured.
func (service *Service) Featured(context context.Context) (*Comic, error) {
	return service.repo.FindFeatured(context)
}

/*
Detail resolves a comic by slug and attaches its chapters ascending.

Returns:
  - *Detail: The comic and its chapters (empty slice when it has none)
  - error: NotFound for an unknown slug
*/
func (service *Service) Detail(context context.Context, comicSlug string) (*Detail, error) {
	comic, err := service.repo.FindBySlug(context, comicSlug)
	if err != nil {
		return nil, err
	}

	chapters, err := service.chapters.ListByComic(context, comic.ID)
	if err != nil {
		return nil, err
	}

	return &Detail{Comic: comic, Chapters: chapters}, nil
}

// FindBySlug returns a comic without its chapters.
func (service *Service) FindBySlug(context context.Context, comicSlug string) (*Comic, error) {
	return service.repo.FindBySlug(context, comicSlug)
}

// FindByID returns a comic with its genres.
func (service *Service) FindByID(context context.Context, id string) (*Comic, error) {
	return service.repo.FindByID(context, id)
}

// ListAll returns the admin listing, newest first.
func (service *Service) ListAll(context context.Context) ([]*Comic, error) {
	return service.repo.ListAll(context)
}

// # Comic Management

/*
Create validates and stores a new comic.

Description: A UUID v7 identity is generated, the slug is derived from the
title when omitted and the status defaults to ongoing. The stored comic is
re-read so the response carries its genres.

Returns:
  - *Comic: The stored comic
  - error: Validation, or Conflict on a duplicate slug
*/
func (service *Service) Create(context context.Context, comic *Comic) (*Comic, error) {
	if err := service.normalize(comic); err != nil {
		return nil, err
	}

	comic.ID = uuid.New()
	if err := service.repo.Create(context, comic); err != nil {
		return nil, err
	}

	service.logger.Info("comic_created",
		slog.String("comic_id", comic.ID),
		slog.String("title", comic.Title),
	)
	events.Emit(context, service.publisher, events.New(events.EntityComic, events.ActionCreated, comic.ID, comic.ID))

	return service.repo.FindByID(context, comic.ID)
}

// Update replaces the editable fields of a comic; nil GenreIDs keeps its genres.
func (service *Service) Update(context context.Context, comic *Comic) (*Comic, error) {
	if err := service.normalize(comic); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, comic); err != nil {
		return nil, err
	}

	service.logger.Info("comic_updated", slog.String("comic_id", comic.ID))
	events.Emit(context, service.publisher, events.New(events.EntityComic, events.ActionUpdated, comic.ID, comic.ID))

	return service.repo.FindByID(context, comic.ID)
}

// Delete removes a comic together with its chapters, pages and genre links.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("comic_deleted", slog.String("comic_id", id))
	events.Emit(context, service.publisher, events.New(events.EntityComic, events.ActionDeleted, id, id))
	return nil
}

// SetGenres replaces the genre associations of a comic.
func (service *Service) SetGenres(context context.Context, id string, genreIDs []int) (*Comic, error) {
	if err := validateGenreIDs(&validate.Validator{}, genreIDs).Err(); err != nil {
		return nil, err
	}

	if err := service.repo.SetGenres(context, id, genreIDs); err != nil {
		return nil, err
	}

	service.logger.Info("comic_genres_replaced", slog.String("comic_id", id), slog.Int("count", len(genreIDs)))
	events.Emit(context, service.publisher, events.New(events.EntityComic, events.ActionUpdated, id, id))

	return service.repo.FindByID(context, id)
}

/*
SetFeatured marks or unmarks the hero banner comic.

Marking a comic unmarks whichever comic held the flag before, atomically, so
readers never observe zero or two featured comics.
*/
func (service *Service) SetFeatured(context context.Context, id string, featured bool) error {
	if err := service.repo.SetFeatured(context, id, featured); err != nil {
		return err
	}

	service.logger.Info("featured_comic_changed", slog.String("comic_id", id), slog.Bool("featured", featured))
	events.Emit(context, service.publisher, events.New(events.EntityComic, events.ActionFeatured, id, id))
	return nil
}

/*
UploadCover stores a cover image and points the comic at its public URL.

Returns:
  - *Comic: The comic with its new cover_url
  - error: NotFound, or Remote when the object store rejects the file
*/
func (service *Service) UploadCover(context context.Context, id string, file storage.File) (*Comic, error) {
	if _, err := service.repo.FindByID(context, id); err != nil {
		return nil, err
	}

	objectPath := storage.CoverPath(service.now(), file.Filename)
	if err := service.uploader.Upload(context, service.coverBucket, objectPath, file.Body, file.Size, file.ContentType); err != nil {
		service.logger.Warn("cover_upload_failed", slog.String("comic_id", id), slog.String("error", err.Error()))
		return nil, err
	}

	coverURL := service.uploader.PublicURL(service.coverBucket, objectPath)
	if err := service.repo.UpdateCover(context, id, coverURL); err != nil {
		return nil, err
	}

	service.logger.Info("comic_cover_uploaded", slog.String("comic_id", id), slog.String("path", objectPath))
	events.Emit(context, service.publisher, events.New(events.EntityComic, events.ActionUpdated, id, id))

	return service.repo.FindByID(context, id)
}

// # Internal Helpers

func (service *Service) normalize(comic *Comic) error {
	comic.Title = strings.TrimSpace(comic.Title)
	comic.Description = strings.TrimSpace(comic.Description)
	comic.Author = strings.TrimSpace(comic.Author)
	comic.Artist = strings.TrimSpace(comic.Artist)

	if comic.Slug == "" {
		comic.Slug = slug.From(comic.Title)
	}
	if comic.Status == "" {
		comic.Status = StatusOngoing
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, comic.Title).MaxLen(FieldTitle, comic.Title, maxTitleLength)
	validator.Required(FieldSlug, comic.Slug)
	if comic.Slug != "" {
		validator.Slug(FieldSlug, comic.Slug)
	}
	validator.Required(FieldDescription, comic.Description)
	validator.Custom(FieldAuthor, comic.Author == "" && comic.Artist == "", "Author or artist is required")
	validator.RangeFloat(FieldRating, comic.Rating, 0, maxRating)
	validator.OneOf(FieldStatus, string(comic.Status),
		string(StatusOngoing),
		string(StatusCompleted),
		string(StatusHiatus),
	)
	validateGenreIDs(validator, comic.GenreIDs)

	if err := validator.Err(); err != nil {
		return err
	}

	comic.Rating = math.Round(comic.Rating*10) / 10
	return nil
}

func validateGenreIDs(validator *validate.Validator, genreIDs []int) *validate.Validator {
	for _, genreID := range genreIDs {
		if genreID <= 0 {
			return validator.Custom(FieldGenreIDs, true, "Must contain positive genre ids")
		}
	}
	return validator
}
