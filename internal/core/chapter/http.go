// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/komik/internal/platform/request"
	"github.com/taibuivan/komik/internal/platform/respond"
	"github.com/taibuivan/komik/internal/platform/storage"
)

// Handler exposes chapter and page management over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes attaches chapter and page management to the admin router.
func (handler *Handler) RegisterAdminRoutes(admin chi.Router) {
	admin.Get("/comics/{id}/chapters", handler.listChapters)
	admin.Post("/comics/{id}/chapters", handler.createChapter)
	admin.Put("/chapters/{id}", handler.updateChapter)
	admin.Delete("/chapters/{id}", handler.deleteChapter)

	admin.Get("/chapters/{id}/pages", handler.listPages)
	admin.Post("/chapters/{id}/pages", handler.uploadPages)
	admin.Delete("/pages/{id}", handler.deletePage)
}

type chapterRequest struct {
	ChapterNumber int    `json:"chapter_number"`
	Title         string `json:"title"`
}

// # Chapters

// GET /api/v1/admin/comics/{id}/chapters.
func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	chapters, err := handler.service.ListByComic(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapters)
}

/*
POST /api/v1/admin/comics/{id}/chapters.

Response:
  - 201: Chapter
  - 400: Validation failed
  - 404: Comic not found
  - 409: Chapter number already used in this comic
*/
func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	var input chapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter := &Chapter{
		ComicID:       requestutil.Param(request, "id"),
		ChapterNumber: input.ChapterNumber,
		Title:         input.Title,
	}
	if err := handler.service.Create(request.Context(), chapter); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, chapter)
}

// PUT /api/v1/admin/chapters/{id}.
func (handler *Handler) updateChapter(writer http.ResponseWriter, request *http.Request) {
	var input chapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter := &Chapter{
		ID:            requestutil.Param(request, "id"),
		ChapterNumber: input.ChapterNumber,
		Title:         input.Title,
	}
	if err := handler.service.Update(request.Context(), chapter); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapter)
}

// DELETE /api/v1/admin/chapters/{id}?confirm=true.
func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.RequireConfirm(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Pages

// GET /api/v1/admin/chapters/{id}/pages.
func (handler *Handler) listPages(writer http.ResponseWriter, request *http.Request) {
	pages, err := handler.service.ListPages(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pages)
}

/*
POST /api/v1/admin/chapters/{id}/pages (multipart, field "files").

Response:
  - 201: []Page in upload order
  - 400: No files or malformed form
  - 404: Chapter not found
  - 502: Object storage rejected an image
*/
func (handler *Handler) uploadPages(writer http.ResponseWriter, request *http.Request) {
	headers, err := requestutil.MultipartFiles(writer, request, FieldFiles)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	uploads := make([]storage.File, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		defer file.Close()

		uploads = append(uploads, storage.File{
			Filename:    header.Filename,
			ContentType: requestutil.ContentType(header),
			Size:        header.Size,
			Body:        file,
		})
	}

	pages, err := handler.service.UploadPages(request.Context(), requestutil.Param(request, "id"), uploads)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, pages)
}

// DELETE /api/v1/admin/pages/{id}?confirm=true.
func (handler *Handler) deletePage(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.RequireConfirm(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePage(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
