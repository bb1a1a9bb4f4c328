// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/komik/internal/platform/events"
	"github.com/taibuivan/komik/internal/platform/storage"
	"github.com/taibuivan/komik/internal/platform/validate"
	"github.com/taibuivan/komik/pkg/uuid"
)

const maxTitleLength = 255

// Service holds the chapter and page business rules.
type Service struct {
	repo       Repository
	uploader   storage.Uploader
	pageBucket string
	publisher  events.Publisher
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a chapter [Service] that stores page images in pageBucket.
func NewService(repo Repository, uploader storage.Uploader, pageBucket string, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		uploader:   uploader,
		pageBucket: pageBucket,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

// # Chapters

// ListByComic returns the chapters of a comic in reading order.
func (service *Service) ListByComic(context context.Context, comicID string) ([]*Chapter, error) {
	return service.repo.ListByComic(context, comicID)
}

// FindByID returns one chapter.
func (service *Service) FindByID(context context.Context, id string) (*Chapter, error) {
	return service.repo.FindByID(context, id)
}

/*
Create validates and stores a new chapter of comicID.

Returns:
  - error: Validation, Conflict on a taken chapter_number, NotFound for an unknown comic
*/
func (service *Service) Create(context context.Context, chapter *Chapter) error {
	if err := service.normalize(chapter); err != nil {
		return err
	}

	chapter.ID = uuid.New()
	if err := service.repo.Create(context, chapter); err != nil {
		return err
	}

	service.logger.Info("chapter_created",
		slog.String("chapter_id", chapter.ID),
		slog.String("comic_id", chapter.ComicID),
		slog.Int("chapter_number", chapter.ChapterNumber),
	)
	events.Emit(context, service.publisher, events.New(events.EntityChapter, events.ActionCreated, chapter.ID, chapter.ComicID))
	return nil
}

// Update changes the number and title of a chapter.
func (service *Service) Update(context context.Context, chapter *Chapter) error {
	if err := service.normalize(chapter); err != nil {
		return err
	}

	if err := service.repo.Update(context, chapter); err != nil {
		return err
	}

	service.logger.Info("chapter_updated", slog.String("chapter_id", chapter.ID))
	events.Emit(context, service.publisher, events.New(events.EntityChapter, events.ActionUpdated, chapter.ID, chapter.ComicID))
	return nil
}

// Delete removes a chapter together with its pages.
func (service *Service) Delete(context context.Context, id string) error {
	chapter, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("chapter_deleted", slog.String("chapter_id", id))
	events.Emit(context, service.publisher, events.New(events.EntityChapter, events.ActionDeleted, id, chapter.ComicID))
	return nil
}

// # Pages

// ListPages returns the pages of a chapter in reading order.
func (service *Service) ListPages(context context.Context, chapterID string) ([]*Page, error) {
	return service.repo.ListPages(context, chapterID)
}

/*
UploadPages stores a batch of page images and appends them to the chapter.

Files keep their submission order and are numbered after the highest page
already present, which is the page count unless pages were deleted. Uploads
run one at a time; the first failure aborts the batch and nothing is written
to the database. Objects stored before a failure are removed again.

Returns:
  - []*Page: The created pages
  - error: Validation for an empty batch, NotFound, Remote when storage fails
*/
func (service *Service) UploadPages(context context.Context, chapterID string, uploads []storage.File) ([]*Page, error) {
	if len(uploads) == 0 {
		return nil, validate.RequiredError(FieldFiles, "At least one image is required")
	}

	chapter, err := service.repo.FindByID(context, chapterID)
	if err != nil {
		return nil, err
	}

	existing, err := service.repo.LastPageNumber(context, chapterID)
	if err != nil {
		return nil, err
	}

	// ── 1. Object Storage ─────────────────────────────────────────────────
	batchTime := service.now()
	pages := make([]*Page, 0, len(uploads))
	for index, upload := range uploads {
		objectPath := storage.PagePath(chapterID, batchTime, index, upload.Filename)
		if err := service.uploader.Upload(context, service.pageBucket, objectPath, upload.Body, upload.Size, upload.ContentType); err != nil {
			service.logger.Warn("page_upload_failed",
				slog.String("chapter_id", chapterID),
				slog.Int("index", index),
				slog.String("error", err.Error()),
			)
			service.discardObjects(context, chapterID, pages)
			return nil, err
		}

		pages = append(pages, &Page{
			ID:         uuid.New(),
			ChapterID:  chapterID,
			PageNumber: existing + index + 1,
			ImageURL:   service.uploader.PublicURL(service.pageBucket, objectPath),
			ObjectKey:  objectPath,
		})
	}

	// ── 2. Persistence ────────────────────────────────────────────────────
	if err := service.repo.InsertPages(context, pages); err != nil {
		service.discardObjects(context, chapterID, pages)
		return nil, err
	}

	service.logger.Info("pages_uploaded",
		slog.String("chapter_id", chapterID),
		slog.Int("count", len(pages)),
		slog.Int("first_page", existing+1),
	)
	events.Emit(context, service.publisher, events.New(events.EntityPage, events.ActionCreated, chapterID, chapter.ComicID))
	return pages, nil
}

// discardObjects removes the objects of a batch that never reached the database.
func (service *Service) discardObjects(context context.Context, chapterID string, pages []*Page) {
	for _, page := range pages {
		if err := service.uploader.Remove(context, service.pageBucket, page.ObjectKey); err != nil {
			service.logger.Warn("page_object_remove_failed",
				slog.String("chapter_id", chapterID),
				slog.String("object_key", page.ObjectKey),
				slog.String("error", err.Error()),
			)
		}
	}
}

/*
DeletePage removes one page. Remaining pages keep their numbers.

The image object is removed after the row. A storage failure is logged and
leaves an orphaned object; the page is gone either way.
*/
func (service *Service) DeletePage(context context.Context, id string) error {
	page, err := service.repo.DeletePage(context, id)
	if err != nil {
		return err
	}

	if page.ObjectKey != "" {
		if err := service.uploader.Remove(context, service.pageBucket, page.ObjectKey); err != nil {
			service.logger.Warn("page_object_remove_failed",
				slog.String("page_id", id),
				slog.String("object_key", page.ObjectKey),
				slog.String("error", err.Error()),
			)
		}
	}

	service.logger.Info("page_deleted", slog.String("page_id", id), slog.String("chapter_id", page.ChapterID))
	events.Emit(context, service.publisher, events.New(events.EntityPage, events.ActionDeleted, id, ""))
	return nil
}

func (service *Service) normalize(chapter *Chapter) error {
	chapter.Title = strings.TrimSpace(chapter.Title)

	validator := &validate.Validator{}
	validator.Positive(FieldChapterNumber, chapter.ChapterNumber).MaxLen(FieldTitle, chapter.Title, maxTitleLength)
	return validator.Err()
}
