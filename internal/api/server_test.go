// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/komik/internal/api"
	"github.com/taibuivan/komik/internal/core/chapter"
	"github.com/taibuivan/komik/internal/core/comic"
	"github.com/taibuivan/komik/internal/core/genre"
	"github.com/taibuivan/komik/internal/platform/config"
	"github.com/taibuivan/komik/internal/platform/constants"
	"github.com/taibuivan/komik/internal/platform/events"
	"github.com/taibuivan/komik/internal/platform/sec"
	"github.com/taibuivan/komik/internal/reader"
	"github.com/taibuivan/komik/internal/users/account"
	"github.com/taibuivan/komik/internal/users/auth"
)

// roleVerifier accepts the tokens "admin" and "user".
type roleVerifier struct{}

func (roleVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	role := sec.UserRole(token)
	if !role.IsValid() {
		return nil, errors.New("unknown token")
	}
	return &sec.AuthClaims{UserID: "u-" + token, Role: string(role)}, nil
}

func newServer(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, logger)
	chapterService := chapter.NewService(nil, nil, constants.DefaultPageBucket, nil, logger)
	comicService := comic.NewService(nil, chapterService, nil, constants.DefaultCoverBucket, nil, logger)

	server := api.NewServer(ctx, &config.Config{ServerPort: "0", Environment: "development"}, logger, roleVerifier{}, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(auth.NewService(nil, nil, nil, logger)),
		Comic:     comic.NewHandler(comicService),
		Chapter:   chapter.NewHandler(chapterService),
		Genre:     genre.NewHandler(genre.NewService(nil, nil, logger)),
		Reader:    reader.NewHandler(reader.NewService(reader.NewCatalogLoader(comicService, chapterService), nil, logger)),
		Account:   account.NewHandler(account.NewService(nil, logger)),
		Events:    events.NewHub(nil, logger),
	})
	return server.Handler()
}

/*
TestServer_AdminGuard requires the admin role on every admin route.
*/
func TestServer_AdminGuard(t *testing.T) {
	handler := newServer(t)

	targets := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/admin/comics"},
		{http.MethodPut, "/api/v1/admin/comics/c-1/featured"},
		{http.MethodPost, "/api/v1/admin/chapters/ch-1/pages"},
		{http.MethodGet, "/api/v1/admin/users"},
		{http.MethodPost, "/api/v1/admin/genres"},
		{http.MethodGet, "/api/v1/admin/events"},
	}

	for _, target := range targets {
		anonymous := httptest.NewRecorder()
		handler.ServeHTTP(anonymous, httptest.NewRequest(target.method, target.path, nil))
		assert.Equal(t, http.StatusUnauthorized, anonymous.Code, target.path)

		request := httptest.NewRequest(target.method, target.path, nil)
		request.Header.Set(constants.HeaderAuthorization, "Bearer user")
		reader := httptest.NewRecorder()
		handler.ServeHTTP(reader, request)
		assert.Equal(t, http.StatusForbidden, reader.Code, target.path)
	}
}

/*
TestServer_Infrastructure answers the liveness probe without auth.
*/
func TestServer_Infrastructure(t *testing.T) {
	recorder := httptest.NewRecorder()
	newServer(t).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestServer_RejectsBadChapterNumber validates the reader route before any lookup.
*/
func TestServer_RejectsBadChapterNumber(t *testing.T) {
	recorder := httptest.NewRecorder()
	newServer(t).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/baca/galactic-warriors/satu", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
