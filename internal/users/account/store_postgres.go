// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/komik/internal/platform/apperr"
	"github.com/taibuivan/komik/internal/platform/database/schema"
	"github.com/taibuivan/komik/internal/platform/dberr"
	"github.com/taibuivan/komik/internal/platform/sec"
	"github.com/taibuivan/komik/internal/users/auth"
)

// PostgresRepository implements [Repository] on top of the auth profile store.
type PostgresRepository struct {
	pool     *pgxpool.Pool
	profiles *auth.PostgresUserRepository
}

// NewPostgresRepository creates a PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool, profiles: auth.NewUserRepository(pool)}
}

func (repository *PostgresRepository) List(context context.Context) ([]*auth.Profile, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, p.%s, p.%s,
			EXISTS (SELECT 1 FROM %s r WHERE r.%s = p.%s AND r.%s = $1)
		FROM %s p
		ORDER BY p.%s DESC`,
		schema.UserProfile.ID, schema.UserProfile.Email, schema.UserProfile.FullName,
		schema.UserProfile.AvatarURL, schema.UserProfile.CreatedAt,
		schema.UserRole.Table, schema.UserRole.UserID, schema.UserProfile.ID, schema.UserRole.Role,
		schema.UserProfile.Table, schema.UserProfile.CreatedAt)

	rows, err := repository.pool.Query(context, query, sec.RoleAdmin)
	if err != nil {
		return nil, dberr.Wrap(err, "list_profiles")
	}
	defer rows.Close()

	profiles := make([]*auth.Profile, 0)
	for rows.Next() {
		profile := &auth.Profile{}
		err := rows.Scan(&profile.ID, &profile.Email, &profile.FullName, &profile.AvatarURL, &profile.CreatedAt, &profile.IsAdmin)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_profile")
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_profiles")
	}
	return profiles, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.Profile, error) {
	return repository.profiles.FindByID(context, id)
}

func (repository *PostgresRepository) GrantRole(context context.Context, userID string, role sec.UserRole) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.UserRole.Table, schema.UserRole.UserID, schema.UserRole.Role)

	if _, err := repository.pool.Exec(context, query, userID, role); err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("user")
		}
		return dberr.Wrap(err, "user_role")
	}
	return nil
}

func (repository *PostgresRepository) RevokeRole(context context.Context, userID string, role sec.UserRole) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.UserRole.Table, schema.UserRole.UserID, schema.UserRole.Role)

	if _, err := repository.pool.Exec(context, query, userID, role); err != nil {
		return dberr.Wrap(err, "user_role")
	}
	return nil
}
