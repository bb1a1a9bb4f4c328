// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/komik/internal/platform/ctxutil"
	"github.com/taibuivan/komik/internal/platform/sec"
)

/*
TestContext_RequestID stores and reads the correlation id.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-42")
	assert.Equal(t, "req-42", ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger falls back to the default logger.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	assert.Equal(t, logger, ctxutil.GetLogger(ctxutil.WithLogger(ctx, logger)))
}

/*
TestContext_AuthUser stores the claims and tags the request logger with the actor.
*/
func TestContext_AuthUser(t *testing.T) {
	var output bytes.Buffer
	ctx := ctxutil.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&output, nil)))
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	ctx = ctxutil.WithAuthUser(ctx, &sec.AuthClaims{UserID: "user-123", Role: string(sec.RoleAdmin)})

	claims := ctxutil.GetAuthUser(ctx)
	require.NotNil(t, claims)
	assert.Equal(t, "user-123", claims.UserID)

	ctxutil.GetLogger(ctx).Info("comic_created")
	assert.Contains(t, output.String(), `"user_id":"user-123"`)
	assert.Contains(t, output.String(), `"role":"admin"`)
}

/*
TestContext_AuthUserWithoutLogger leaves the default logger alone.
*/
func TestContext_AuthUserWithoutLogger(t *testing.T) {
	ctx := ctxutil.WithAuthUser(context.Background(), &sec.AuthClaims{UserID: "user-123"})

	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))
	assert.NotNil(t, ctxutil.GetAuthUser(ctx))
}
