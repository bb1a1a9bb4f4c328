// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/komik/internal/platform/apperr"
	"github.com/taibuivan/komik/internal/platform/database/schema"
	"github.com/taibuivan/komik/internal/platform/dberr"
	"github.com/taibuivan/komik/internal/platform/postgres"
	"github.com/taibuivan/komik/internal/platform/sec"
)

const resourceProfile = "profile"

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a PostgreSQL implementation of [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// selectProfile projects a profile plus the admin flag derived from users.userrole.
var selectProfile = fmt.Sprintf(`
	SELECT p.%s, p.%s, p.%s, p.%s, p.%s, p.%s,
		EXISTS (SELECT 1 FROM %s r WHERE r.%s = p.%s AND r.%s = '%s')
	FROM %s p`,
	schema.UserProfile.ID, schema.UserProfile.Email, schema.UserProfile.FullName,
	schema.UserProfile.PasswordHash, schema.UserProfile.AvatarURL, schema.UserProfile.CreatedAt,
	schema.UserRole.Table, schema.UserRole.UserID, schema.UserProfile.ID, schema.UserRole.Role, sec.RoleAdmin,
	schema.UserProfile.Table)

func scanProfile(row pgx.Row) (*Profile, error) {
	profile := &Profile{}
	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&profile.FullName,
		&profile.PasswordHash,
		&profile.AvatarURL,
		&profile.CreatedAt,
		&profile.IsAdmin,
	)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*Profile, error) {
	query := fmt.Sprintf(`%s WHERE p.%s = $1`, selectProfile, schema.UserProfile.ID)

	profile, err := scanProfile(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceProfile)
	}
	return profile, nil
}

func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*Profile, error) {
	query := fmt.Sprintf(`%s WHERE p.%s = $1`, selectProfile, schema.UserProfile.Email)

	profile, err := scanProfile(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, resourceProfile)
	}
	return profile, nil
}

/*
Create inserts a profile and grants the 'user' role.

Description: Both rows are written in one transaction so a profile never
exists without a role row.

Returns:
  - error: apperr.Conflict when the email is already registered
*/
func (repository *PostgresUserRepository) Create(context context.Context, profile *Profile) error {
	insertProfile := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`,
		schema.UserProfile.Table,
		schema.UserProfile.ID, schema.UserProfile.Email, schema.UserProfile.FullName, schema.UserProfile.PasswordHash,
		schema.UserProfile.CreatedAt)

	insertRole := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.UserRole.Table, schema.UserRole.UserID, schema.UserRole.Role)

	err := postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		err := transaction.QueryRow(context, insertProfile,
			profile.ID, profile.Email, profile.FullName, profile.PasswordHash,
		).Scan(&profile.CreatedAt)
		if err != nil {
			return err
		}

		_, err = transaction.Exec(context, insertRole, profile.ID, sec.RoleUser)
		return err
	})

	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("Email is already registered")
	}
	if err != nil {
		return dberr.Wrap(err, resourceProfile)
	}
	return nil
}
