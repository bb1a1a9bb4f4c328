// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/komik/internal/platform/apperr"
)

// Wrap inspects a database error and classifies it as an [apperr.AppError].
//
// # Mapping
//
//   - pgx.ErrNoRows         → NotFound(resource)
//   - invalid_text_repr     → NotFound(resource), a malformed id matches no row
//   - unique_violation      → Conflict
//   - foreign_key_violation → ValidationError
//   - check_violation       → ValidationError
//   - anything else         → Internal (cause kept for logging)
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// Already classified upstream
	if apperr.IsAppError(err) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.InvalidTextRepresentation:
			return apperr.NotFound(resource)
		case pgerrcode.UniqueViolation:
			return &apperr.AppError{
				Code:       apperr.CodeConflict,
				Message:    fmt.Sprintf("%s already exists", resource),
				HTTPStatus: http.StatusConflict,
				Cause:      err,
			}
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError(fmt.Sprintf("%s references a missing record", resource))
		case pgerrcode.CheckViolation:
			return apperr.ValidationError(fmt.Sprintf("%s violates a constraint", resource))
		}
	}

	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a Postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation
}

// IsForeignKeyViolation reports whether err references a missing parent row.
func IsForeignKeyViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgerrcode.ForeignKeyViolation
}
