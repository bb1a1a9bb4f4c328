// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/komik/internal/core/genre"
	"github.com/taibuivan/komik/internal/platform/apperr"
	"github.com/taibuivan/komik/internal/platform/events"
)

// # Mocks

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]*genre.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*genre.Genre), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int) (*genre.Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genre.Genre), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, g *genre.Genre) error {
	args := m.Called(ctx, g)
	g.ID = 9
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, g *genre.Genre) error {
	return m.Called(ctx, g).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

func newService(repo *MockRepository, publisher *MockPublisher) *genre.Service {
	return genre.NewService(repo, publisher, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// # Domain

/*
TestGenre_Matches compares by name or slug, ignoring case.
*/
func TestGenre_Matches(t *testing.T) {
	scifi := genre.Genre{Name: "Sci-Fi", Slug: "sci-fi"}

	assert.True(t, scifi.Matches("sci-fi"))
	assert.True(t, scifi.Matches("SCI-FI"))
	assert.False(t, scifi.Matches("scifi"))

	assert.True(t, genre.IsAll("Semua"))
	assert.True(t, genre.IsAll("semua"))
	assert.True(t, genre.IsAll(""))
	assert.False(t, genre.IsAll("Action"))
}

// # Service

/*
TestService_Create derives the slug and publishes an event.
*/
func TestService_Create(t *testing.T) {
	repo := new(MockRepository)
	publisher := new(MockPublisher)
	service := newService(repo, publisher)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(g *genre.Genre) bool {
		return g.Name == "Slice of Life" && g.Slug == "slice-of-life"
	})).Return(nil)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == "genre.created" && e.ID == "9"
	})).Return(nil)

	created := &genre.Genre{Name: "  Slice of Life "}
	require.NoError(t, service.Create(context.Background(), created))
	assert.Equal(t, 9, created.ID)

	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

/*
TestService_Create_Validation rejects an empty name without touching the store.
*/
func TestService_Create_Validation(t *testing.T) {
	repo := new(MockRepository)
	service := newService(repo, new(MockPublisher))

	err := service.Create(context.Background(), &genre.Genre{Name: "   "})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

/*
TestService_Delete_NotFound propagates the store error and publishes nothing.
*/
func TestService_Delete_NotFound(t *testing.T) {
	repo := new(MockRepository)
	publisher := new(MockPublisher)
	service := newService(repo, publisher)

	repo.On("Delete", mock.Anything, 42).Return(apperr.NotFound("genre"))

	err := service.Delete(context.Background(), 42)
	assert.True(t, apperr.IsNotFound(err))
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

// # HTTP

func newRouter(service *genre.Service) http.Handler {
	handler := genre.NewHandler(service)
	router := chi.NewRouter()
	router.Mount("/genre", handler.Routes())
	router.Mount("/admin/genres", handler.AdminRoutes())
	return router
}

/*
TestHandler_List returns genres together with the "Semua" selector.
*/
func TestHandler_List(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return([]*genre.Genre{
		{ID: 1, Name: "Action", Slug: "action"},
		{ID: 2, Name: "Romance", Slug: "romance"},
	}, nil)

	recorder := httptest.NewRecorder()
	newRouter(newService(repo, new(MockPublisher))).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/genre", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data struct {
			All    string         `json:"all"`
			Genres []*genre.Genre `json:"genres"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Semua", body.Data.All)
	assert.Len(t, body.Data.Genres, 2)
}

/*
TestHandler_Delete_RequiresConfirm refuses deletes without confirm=true.
*/
func TestHandler_Delete_RequiresConfirm(t *testing.T) {
	repo := new(MockRepository)
	publisher := new(MockPublisher)
	router := newRouter(newService(repo, publisher))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/admin/genres/3", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	repo.On("Delete", mock.Anything, 3).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/admin/genres/3?confirm=true", nil))
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

/*
TestHandler_Create_BadJSON maps a malformed body to 400.
*/
func TestHandler_Create_BadJSON(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/admin/genres", strings.NewReader("{"))

	newRouter(newService(new(MockRepository), new(MockPublisher))).ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
