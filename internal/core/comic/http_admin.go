// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/komik/internal/platform/request"
	"github.com/taibuivan/komik/internal/platform/respond"
	"github.com/taibuivan/komik/internal/platform/storage"
	"github.com/taibuivan/komik/internal/platform/validate"
)

// RegisterAdminRoutes attaches comic management to the admin router.
func (handler *Handler) RegisterAdminRoutes(admin chi.Router) {
	admin.Get("/comics", handler.listComics)
	admin.Post("/comics", handler.createComic)
	admin.Get("/comics/{id}", handler.getComic)
	admin.Put("/comics/{id}", handler.updateComic)
	admin.Delete("/comics/{id}", handler.deleteComic)

	admin.Put("/comics/{id}/featured", handler.setFeatured)
	admin.Put("/comics/{id}/genres", handler.setGenres)
	admin.Post("/comics/{id}/cover", handler.uploadCover)
}

// # Request Payloads

type comicRequest struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Author      string  `json:"author"`
	Artist      string  `json:"artist"`
	Rating      float64 `json:"rating"`
	Status      string  `json:"status"`
	GenreIDs    []int   `json:"genre_ids"`
}

func (input comicRequest) toComic(id string) *Comic {
	return &Comic{
		ID:          id,
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
		Author:      input.Author,
		Artist:      input.Artist,
		Rating:      input.Rating,
		Status:      Status(input.Status),
		GenreIDs:    input.GenreIDs,
	}
}

type featuredRequest struct {
	Featured *bool `json:"featured"`
}

type genresRequest struct {
	GenreIDs []int `json:"genre_ids"`
}

// # Comics

// GET /api/v1/admin/comics.
func (handler *Handler) listComics(writer http.ResponseWriter, request *http.Request) {
	comics, err := handler.service.ListAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comics)
}

// GET /api/v1/admin/comics/{id}.
func (handler *Handler) getComic(writer http.ResponseWriter, request *http.Request) {
	comic, err := handler.service.FindByID(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comic)
}

/*
POST /api/v1/admin/comics.

Response:
  - 201: Comic
  - 400: Validation failed
  - 409: Slug already exists
*/
func (handler *Handler) createComic(writer http.ResponseWriter, request *http.Request) {
	var input comicRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, err := handler.service.Create(request.Context(), input.toComic(""))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comic)
}

// PUT /api/v1/admin/comics/{id}.
func (handler *Handler) updateComic(writer http.ResponseWriter, request *http.Request) {
	var input comicRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, err := handler.service.Update(request.Context(), input.toComic(requestutil.Param(request, "id")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comic)
}

// DELETE /api/v1/admin/comics/{id}?confirm=true.
func (handler *Handler) deleteComic(writer http.ResponseWriter, request *http.Request) {
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

// # Associations

/*
PUT /api/v1/admin/comics/{id}/featured.

Request: {"featured": true}

Response:
  - 204: Flag changed
  - 404: Comic not found
*/
func (handler *Handler) setFeatured(writer http.ResponseWriter, request *http.Request) {
	var input featuredRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Featured == nil {
		respond.Error(writer, request, validate.RequiredError("featured", "Must be true or false"))
		return
	}

	if err := handler.service.SetFeatured(request.Context(), requestutil.Param(request, "id"), *input.Featured); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// PUT /api/v1/admin/comics/{id}/genres.
func (handler *Handler) setGenres(writer http.ResponseWriter, request *http.Request) {
	var input genresRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, err := handler.service.SetGenres(request.Context(), requestutil.Param(request, "id"), input.GenreIDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comic)
}

/*
POST /api/v1/admin/comics/{id}/cover (multipart, field "file").

Response:
  - 200: Comic with the new cover_url
  - 400: Missing file
  - 502: Object storage rejected the image
*/
func (handler *Handler) uploadCover(writer http.ResponseWriter, request *http.Request) {
	headers, err := requestutil.MultipartFiles(writer, request, FieldFile)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	header := headers[0]
	body, err := header.Open()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer body.Close()

	comic, err := handler.service.UploadCover(request.Context(), requestutil.Param(request, "id"), storage.File{
		Filename:    header.Filename,
		ContentType: requestutil.ContentType(header),
		Size:        header.Size,
		Body:        body,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comic)
}
