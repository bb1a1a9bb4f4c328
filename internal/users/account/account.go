// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account lets administrators list users and manage the admin role.

A user is an admin exactly when a ('admin') row exists for them in
users.userrole. Granting inserts that row and is idempotent; revoking deletes
it. Profiles themselves are owned by the auth package.
*/
package account

import (
	"context"

	"github.com/taibuivan/komik/internal/platform/sec"
	"github.com/taibuivan/komik/internal/users/auth"
)

// FieldAdmin is the request field of the role toggle.
const FieldAdmin = "admin"

// # Repository Contracts

// Repository defines the persistence contract for role management.
type Repository interface {

	// List returns every profile, newest first, with its admin flag.
	List(context context.Context) ([]*auth.Profile, error)

	// FindByID returns one profile; NotFound when absent.
	FindByID(context context.Context, id string) (*auth.Profile, error)

	/*
		GrantRole inserts the role row; an existing row is left as is.

		Returns:
		  - error: apperr.NotFound when the user does not exist
	*/
	GrantRole(context context.Context, userID string, role sec.UserRole) error

	// RevokeRole deletes the role row; a missing row is not an error.
	RevokeRole(context context.Context, userID string, role sec.UserRole) error
}
