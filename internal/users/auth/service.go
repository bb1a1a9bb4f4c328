// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/komik/internal/platform/apperr"
	"github.com/taibuivan/komik/internal/platform/sec"
	"github.com/taibuivan/komik/internal/platform/validate"
	"github.com/taibuivan/komik/pkg/uuid"
)

// # Contracts & Types

// TokenProvider generates access tokens; satisfied by [sec.TokenService].
type TokenProvider interface {
	GenerateAccessToken(userID, fullName, role string, timeToLive time.Duration) (string, error)
}

// Service implements the authentication use cases.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenProvider
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs an auth [Service].
func NewService(users UserRepository, sessions SessionRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
		now:      time.Now,
	}
}

// SignUpInput holds the data required to register a reader.
type SignUpInput struct {
	Email    string
	Password string
	FullName string
}

// LoginSession is a freshly issued credential pair.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *Profile
}

// # Registration

/*
SignUp validates, hashes and persists a new profile with the 'user' role.

Returns:
  - *Profile: The created profile
  - error: ValidationError for bad input, Conflict when the email is taken
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (*Profile, error) {
	email := normalizeEmail(input.Email)
	fullName := strings.TrimSpace(input.FullName)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxLen(FieldFullName, fullName, MaxFullNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth: hash password: %w", err))
	}

	profile := &Profile{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hashedPassword,
	}

	if err := service.users.Create(context, profile); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_signed_up", slog.String("user_id", profile.ID))
	return profile, nil
}

// # Authentication

/*
SignIn verifies credentials and opens a session.

Description: Unknown emails and wrong passwords return the same error so
accounts cannot be enumerated.

Returns:
  - *LoginSession: Access token, refresh token and profile
  - error: Unauthorized for bad credentials
*/
func (service *Service) SignIn(context context.Context, email, password string) (*LoginSession, error) {
	profile, err := service.users.FindByEmail(context, normalizeEmail(email))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, profile.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.issue(context, profile)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_signed_in",
		slog.String("user_id", profile.ID),
		slog.String("role", string(profile.Role())),
	)
	return session, nil
}

/*
RestoreSession exchanges a refresh token for a new credential pair.

Description: The presented token is consumed before anything else, so a
replayed token fails even if the first restore is still running.

Returns:
  - error: Unauthorized for an unknown, expired or reused token
*/
func (service *Service) RestoreSession(context context.Context, refreshToken string) (*LoginSession, error) {
	stored, err := service.sessions.Consume(context, sec.HashToken(refreshToken))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid or expired session")
		}
		return nil, err
	}

	profile, err := service.users.FindByID(context, stored.UserID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Account no longer exists")
		}
		return nil, err
	}

	return service.issue(context, profile)
}

// SignOut deletes the session behind refreshToken; unknown tokens succeed.
func (service *Service) SignOut(context context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return service.sessions.Delete(context, sec.HashToken(refreshToken))
}

// Me returns the profile of the authenticated user.
func (service *Service) Me(context context.Context, userID string) (*Profile, error) {
	return service.users.FindByID(context, userID)
}

// # Internal Helpers

func (service *Service) issue(context context.Context, profile *Profile) (*LoginSession, error) {

	// ── 1. Access Token ──────────────────────────────────────────────────
	accessToken, err := service.tokens.GenerateAccessToken(profile.ID, profile.FullName, string(profile.Role()), AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth: sign access token: %w", err))
	}

	// ── 2. Refresh Token ─────────────────────────────────────────────────
	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// ── 3. Persist the digest ────────────────────────────────────────────
	now := service.now()
	session := &Session{UserID: profile.ID, CreatedAt: now}
	if err := service.sessions.Create(context, sec.HashToken(refreshToken), session, RefreshTokenTTL); err != nil {
		return nil, err
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: now.Add(RefreshTokenTTL),
		User:                  profile,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
