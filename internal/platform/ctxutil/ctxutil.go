// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil reads and writes the request-scoped values the middleware
// chain attaches: the request id, the logger and the signed-in user.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/komik/internal/platform/ctxkey"
	"github.com/taibuivan/komik/internal/platform/sec"
)

// # Request Tracing

// WithRequestID attaches the X-Request-ID value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the request id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger attaches the per-request logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the per-request logger, or [slog.Default] when none is set.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

/*
WithAuthUser attaches the verified claims.

When a request logger is present it is replaced by one carrying user_id and
role, so every later log line of the request names the actor.
*/
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	ctx = context.WithValue(ctx, ctxkey.KeyUser, user)

	if logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil && user != nil {
		ctx = WithLogger(ctx, logger.With(
			slog.String("user_id", user.UserID),
			slog.String("role", user.Role),
		))
	}
	return ctx
}

// GetAuthUser returns the claims, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	return claims
}
