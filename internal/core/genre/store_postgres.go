// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/komik/internal/platform/apperr"
	"github.com/taibuivan/komik/internal/platform/database/schema"
	"github.com/taibuivan/komik/internal/platform/dberr"
)

const resourceGenre = "genre"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed genre store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context) ([]*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s ORDER BY %s ASC`,
		schema.CoreGenre.ID, schema.CoreGenre.Name, schema.CoreGenre.Slug,
		schema.CoreGenre.Table, schema.CoreGenre.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		genre := &Genre{}
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, genre)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	return genres, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CoreGenre.ID, schema.CoreGenre.Name, schema.CoreGenre.Slug,
		schema.CoreGenre.Table, schema.CoreGenre.ID)

	genre := &Genre{}
	if err := repository.db.QueryRow(context, query, id).Scan(&genre.ID, &genre.Name, &genre.Slug); err != nil {
		return nil, dberr.Wrap(err, resourceGenre)
	}
	return genre, nil
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		schema.CoreGenre.Table, schema.CoreGenre.Name, schema.CoreGenre.Slug, schema.CoreGenre.ID)

	if err := repository.db.QueryRow(context, query, genre.Name, genre.Slug).Scan(&genre.ID); err != nil {
		return dberr.Wrap(err, resourceGenre)
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		schema.CoreGenre.Table, schema.CoreGenre.Name, schema.CoreGenre.Slug, schema.CoreGenre.ID)

	result, err := repository.db.Exec(context, query, genre.Name, genre.Slug, genre.ID)
	if err != nil {
		return dberr.Wrap(err, resourceGenre)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(resourceGenre)
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreGenre.Table, schema.CoreGenre.ID)

	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceGenre)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(resourceGenre)
	}
	return nil
}
