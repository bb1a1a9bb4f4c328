// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for profiles.
type UserRepository interface {

	/*
		FindByID returns the profile with the given ID and its admin flag.

		Returns:
		  - error: apperr.NotFound when absent
	*/
	FindByID(context context.Context, id string) (*Profile, error)

	// FindByEmail looks up a profile by its normalized email.
	FindByEmail(context context.Context, email string) (*Profile, error)

	/*
		Create inserts the profile and its 'user' role row in one transaction.

		Returns:
		  - error: apperr.Conflict when the email is taken
	*/
	Create(context context.Context, profile *Profile) error
}

// # Session Data Access

// SessionRepository stores refresh sessions keyed by the token digest.
type SessionRepository interface {

	// Create stores a session that expires after ttl.
	Create(context context.Context, tokenHash string, session *Session, ttl time.Duration) error

	/*
		Consume returns the session and deletes it atomically, so a refresh
		token can be used only once.

		Returns:
		  - error: apperr.NotFound for an unknown or expired token
	*/
	Consume(context context.Context, tokenHash string) (*Session, error)

	// Delete removes the session; unknown tokens are not an error.
	Delete(context context.Context, tokenHash string) error
}
