// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
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

	"github.com/taibuivan/komik/internal/platform/apperr"
	"github.com/taibuivan/komik/internal/platform/ctxutil"
	"github.com/taibuivan/komik/internal/platform/sec"
	"github.com/taibuivan/komik/internal/users/account"
	"github.com/taibuivan/komik/internal/users/auth"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]*auth.Profile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*auth.Profile), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*auth.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Profile), args.Error(1)
}

func (m *MockRepository) GrantRole(ctx context.Context, userID string, role sec.UserRole) error {
	return m.Called(ctx, userID, role).Error(0)
}

func (m *MockRepository) RevokeRole(ctx context.Context, userID string, role sec.UserRole) error {
	return m.Called(ctx, userID, role).Error(0)
}

func newService(repository *MockRepository) *account.Service {
	return account.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestSetAdmin covers grant, revoke, self-revoke and unknown users.
*/
func TestSetAdmin(t *testing.T) {
	t.Run("grant", func(t *testing.T) {
		repository := &MockRepository{}
		repository.On("FindByID", mock.Anything, "user-2").Return(&auth.Profile{ID: "user-2"}, nil).Once()
		repository.On("GrantRole", mock.Anything, "user-2", sec.RoleAdmin).Return(nil).Once()
		repository.On("FindByID", mock.Anything, "user-2").Return(&auth.Profile{ID: "user-2", IsAdmin: true}, nil).Once()

		profile, err := newService(repository).SetAdmin(context.Background(), "admin-1", "user-2", true)
		require.NoError(t, err)
		assert.True(t, profile.IsAdmin)
		repository.AssertExpectations(t)
	})

	t.Run("revoke another admin", func(t *testing.T) {
		repository := &MockRepository{}
		repository.On("FindByID", mock.Anything, "admin-2").Return(&auth.Profile{ID: "admin-2"}, nil)
		repository.On("RevokeRole", mock.Anything, "admin-2", sec.RoleAdmin).Return(nil).Once()

		_, err := newService(repository).SetAdmin(context.Background(), "admin-1", "admin-2", false)
		require.NoError(t, err)
		repository.AssertExpectations(t)
	})

	t.Run("self revoke", func(t *testing.T) {
		repository := &MockRepository{}

		_, err := newService(repository).SetAdmin(context.Background(), "admin-1", "admin-1", false)
		assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
		repository.AssertNotCalled(t, "RevokeRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		repository := &MockRepository{}
		repository.On("FindByID", mock.Anything, "ghost").Return(nil, apperr.NotFound("profile"))

		_, err := newService(repository).SetAdmin(context.Background(), "admin-1", "ghost", true)
		assert.True(t, apperr.IsNotFound(err))
		repository.AssertNotCalled(t, "GrantRole", mock.Anything, mock.Anything, mock.Anything)
	})
}

/*
TestHandler_SetAdmin checks status codes for the role toggle.
*/
func TestHandler_SetAdmin(t *testing.T) {
	repository := &MockRepository{}
	repository.On("FindByID", mock.Anything, "user-2").Return(&auth.Profile{ID: "user-2", IsAdmin: true}, nil)
	repository.On("GrantRole", mock.Anything, "user-2", sec.RoleAdmin).Return(nil)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := &sec.AuthClaims{UserID: "admin-1", Role: string(sec.RoleAdmin)}
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
		})
	})
	account.NewHandler(newService(repository)).RegisterAdminRoutes(router)

	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
	}{
		{"grant", "/users/user-2/admin", `{"admin":true}`, http.StatusOK},
		{"missing flag", "/users/user-2/admin", `{}`, http.StatusBadRequest},
		{"self revoke", "/users/admin-1/admin", `{"admin":false}`, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPut, tt.target, strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

/*
TestHandler_ListUsers renders the admin flag.
*/
func TestHandler_ListUsers(t *testing.T) {
	repository := &MockRepository{}
	repository.On("List", mock.Anything).Return([]*auth.Profile{
		{ID: "user-2", Email: "budi@komik.app"},
		{ID: "admin-1", Email: "rina@komik.app", IsAdmin: true},
	}, nil)

	router := chi.NewRouter()
	account.NewHandler(newService(repository)).RegisterAdminRoutes(router)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"is_admin":true`)
	assert.Contains(t, recorder.Body.String(), `"is_admin":false`)
}
