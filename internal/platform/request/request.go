// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/komik/internal/platform/apperr"
	"github.com/taibuivan/komik/internal/platform/constants"
	"github.com/taibuivan/komik/internal/platform/ctxutil"
	"github.com/taibuivan/komik/internal/platform/sec"
	"github.com/taibuivan/komik/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntParam parses a named URL parameter as an integer.

Returns:
  - int: The parsed value
  - error: apperr.ValidationError naming the parameter when it is not a number
*/
func IntParam(request *http.Request, name string) (int, error) {
	raw := chi.URLParam(request, name)
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validate.RequiredError(name, "Must be a whole number")
	}
	return value, nil
}

// QueryInt reads an integer query value, falling back when absent or malformed.
func QueryInt(request *http.Request, name string, fallback int) int {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

/*
RequireConfirm guards destructive admin operations.

Every DELETE on the admin surface must carry ?confirm=true.
*/
func RequireConfirm(request *http.Request) error {
	if !strings.EqualFold(request.URL.Query().Get(constants.QueryConfirm), "true") {
		return validate.RequiredError(constants.QueryConfirm, "Deletion must be confirmed with confirm=true")
	}
	return nil
}

/*
MultipartFiles parses a multipart body and returns the files under field.

The body is capped at [constants.MaxUploadBytes]; parts beyond
[constants.MaxUploadMemory] spill to temporary files. The caller opens each
header in order.

Returns:
  - error: apperr.ValidationError when the form is malformed or has no file
*/
func MultipartFiles(writer http.ResponseWriter, request *http.Request, field string) ([]*multipart.FileHeader, error) {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadBytes)
	if err := request.ParseMultipartForm(constants.MaxUploadMemory); err != nil {
		return nil, validate.RequiredError(field, "Must be a multipart upload within the size limit")
	}

	files := request.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, validate.RequiredError(field, "At least one file is required")
	}
	return files, nil
}

// ContentType returns the declared type of an uploaded part.
func ContentType(header *multipart.FileHeader) string {
	if contentType := header.Header.Get(constants.HeaderContentType); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

// RequiredUserID returns the User ID of the currently logged-in user.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
