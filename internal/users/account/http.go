// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/komik/internal/platform/request"
	"github.com/taibuivan/komik/internal/platform/respond"
	"github.com/taibuivan/komik/internal/platform/validate"
)

// Handler implements the admin user endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// RegisterAdminRoutes attaches user management to the admin router.
func (handler *Handler) RegisterAdminRoutes(admin chi.Router) {
	admin.Get("/users", handler.listUsers)
	admin.Put("/users/{id}/admin", handler.setAdmin)
}

type adminRequest struct {
	Admin *bool `json:"admin"`
}

/*
GET /api/v1/admin/users.

Response:
  - 200: []Profile with is_admin, newest first
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.accountService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, users)
}

/*
PUT /api/v1/admin/users/{id}/admin.

Request: {"admin": true}

Response:
  - 200: Profile after the change
  - 400: Missing admin flag
  - 403: Revoking your own admin role
  - 404: Unknown user
*/
func (handler *Handler) setAdmin(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input adminRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Admin == nil {
		respond.Error(writer, request, validate.RequiredError(FieldAdmin, "is required"))
		return
	}

	profile, err := handler.accountService.SetAdmin(request.Context(), actorID, requestutil.Param(request, "id"), *input.Admin)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}
