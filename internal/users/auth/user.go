// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements sign-up, sign-in and server-side sessions.

Access is granted with short-lived RS256 JWTs. The long-lived credential is an
opaque refresh token kept in an HttpOnly cookie; only its SHA-256 digest is
stored, in Redis, with a TTL. Restoring a session consumes the old token and
issues a new pair.
*/
package auth

import (
	"time"

	"github.com/taibuivan/komik/internal/platform/sec"
)

// # Domain Entities

// Profile is a registered reader as stored in users.profile.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Role returns the authorization level carried in access tokens.
func (profile *Profile) Role() sec.UserRole {
	if profile.IsAdmin {
		return sec.RoleAdmin
	}
	return sec.RoleUser
}

// Session is what a refresh token resolves to.
type Session struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldFullName    = "full_name"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
)
