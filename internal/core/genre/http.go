// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/komik/internal/platform/constants"
	requestutil "github.com/taibuivan/komik/internal/platform/request"
	"github.com/taibuivan/komik/internal/platform/respond"
)

// Handler exposes genres over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a genre [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public genre endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listGenres)
	return router
}

// AdminRoutes returns the genre management endpoints; mount behind the admin guard.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.createGenre)
	router.Put("/{id}", handler.updateGenre)
	router.Delete("/{id}", handler.deleteGenre)
	return router
}

type listResponse struct {
	All    string   `json:"all"`
	Genres []*Genre `json:"genres"`
}

type genreRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

/*
GET /api/v1/genre.

Response:
  - 200: {all, genres}: genres ordered by name plus the "Semua" selector
*/
func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, listResponse{All: constants.GenreAll, Genres: genres})
}

/*
POST /api/v1/admin/genres.

Response:
  - 201: Genre
  - 400: Validation failed
  - 409: Name or slug already exists
*/
func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input genreRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre := &Genre{Name: input.Name, Slug: input.Slug}
	if err := handler.service.Create(request.Context(), genre); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, genre)
}

// PUT /api/v1/admin/genres/{id}.
func (handler *Handler) updateGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input genreRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre := &Genre{ID: genreID, Name: input.Name, Slug: input.Slug}
	if err := handler.service.Update(request.Context(), genre); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genre)
}

// DELETE /api/v1/admin/genres/{id}?confirm=true.
func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := requestutil.RequireConfirm(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), genreID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
