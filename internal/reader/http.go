// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/komik/internal/platform/request"
	"github.com/taibuivan/komik/internal/platform/respond"
	"github.com/taibuivan/komik/internal/platform/validate"
)

// Handler exposes reading over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a reader [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the stateless reader and the session endpoints.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/baca/{slug}/{chapter}", handler.openChapter)

	api.Route("/reader/sessions", func(sessions chi.Router) {
		sessions.Post("/", handler.startSession)
		sessions.Get("/{id}", handler.getSession)
		sessions.Post("/{id}/advance", handler.advance)
		sessions.Post("/{id}/retreat", handler.retreat)
		sessions.Post("/{id}/reload", handler.reload)
		sessions.Delete("/{id}", handler.endSession)
	})
}

type startRequest struct {
	Slug    string `json:"slug"`
	Chapter int    `json:"chapter"`
}

/*
GET /api/v1/baca/{slug}/{chapter}.

Response:
  - 200: View at page 0
  - 404: Unknown comic, chapter, or a chapter without pages
  - 502: The catalog could not be read
*/
func (handler *Handler) openChapter(writer http.ResponseWriter, request *http.Request) {
	chapterNumber, err := requestutil.IntParam(request, "chapter")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.Open(request.Context(), requestutil.Param(request, "slug"), chapterNumber)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

/*
POST /api/v1/reader/sessions.

Request: {"slug": "galactic-warriors", "chapter": 1}

Response:
  - 201: {session_id, view}; view.status is load_error when the catalog failed
  - 404: Unknown comic, chapter, or empty chapter
*/
func (handler *Handler) startSession(writer http.ResponseWriter, request *http.Request) {
	var input startRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("slug", input.Slug).Positive("chapter", input.Chapter)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.StartSession(request.Context(), input.Slug, input.Chapter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, session)
}

// GET /api/v1/reader/sessions/{id}.
func (handler *Handler) getSession(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.service.Session(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

/*
POST /api/v1/reader/sessions/{id}/advance.

Response:
  - 200: {session_id, view, transition}
  - 404: Session expired
  - 409: Another request moved the session first
*/
func (handler *Handler) advance(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.service.Advance(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

// POST /api/v1/reader/sessions/{id}/retreat.
func (handler *Handler) retreat(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.service.Retreat(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

// POST /api/v1/reader/sessions/{id}/reload.
func (handler *Handler) reload(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.service.Reload(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

// DELETE /api/v1/reader/sessions/{id}.
func (handler *Handler) endSession(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.EndSession(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
