// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/komik/internal/platform/constants"
	requestutil "github.com/taibuivan/komik/internal/platform/request"
	"github.com/taibuivan/komik/internal/platform/respond"
	"github.com/taibuivan/komik/pkg/pagination"
)

// Handler exposes the catalog and its administration over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a comic [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public catalog endpoints, mounted at /komik.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.browseComics)
	router.Get("/latest", handler.latestComics)
	router.Get("/featured", handler.featuredComic)
	router.Get("/{slug}", handler.comicDetail)
	return router
}

// # Catalog Views

/*
GET /api/v1/komik?genre=&q=&page=&limit=.

Description: Filters the catalog by genre selector ("Semua" or empty for
all) and a case-insensitive title substring.

Response:
  - 200: {data: []Comic, meta}
*/
func (handler *Handler) browseComics(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	params := pagination.FromRequest(request)

	comics, total, err := handler.service.Browse(request.Context(), query.Get("genre"), query.Get("q"), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, comics, pagination.NewMeta(params.Page, params.Limit, total))
}

// GET /api/v1/komik/latest?limit=8.
func (handler *Handler) latestComics(writer http.ResponseWriter, request *http.Request) {
	limit := requestutil.QueryInt(request, "limit", constants.LatestComicsLimit)

	comics, err := handler.service.Latest(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comics)
}

/*
GET /api/v1/komik/featured.

Response:
  - 200: Comic
  - 404: No comic is featured
*/
func (handler *Handler) featuredComic(writer http.ResponseWriter, request *http.Request) {
	comic, err := handler.service.Featured(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comic)
}

/*
GET /api/v1/komik/{slug}.

Response:
  - 200: Comic with chapters ascending
  - 404: Unknown slug
*/
func (handler *Handler) comicDetail(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.service.Detail(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}
