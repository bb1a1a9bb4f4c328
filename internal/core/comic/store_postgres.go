// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
PostgreSQL implementation of the catalog store.

Genres are aggregated into a JSON array per row with json_agg so a listing
costs one round-trip. Writes that touch the comic and its junction rows run
inside a single transaction.
*/
package comic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/komik/internal/platform/apperr"
	"github.com/taibuivan/komik/internal/platform/database/schema"
	"github.com/taibuivan/komik/internal/platform/dberr"
	"github.com/taibuivan/komik/internal/platform/postgres"
)

const resourceComic = "comic"

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed comic store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectComics is the shared projection: comic columns plus the genres JSON array.
var selectComics = fmt.Sprintf(`
	SELECT
		c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
		c.%s, c.%s::float8, c.%s, c.%s, c.%s, c.%s,
		COALESCE((
			SELECT json_agg(json_build_object('id', g.%s, 'name', g.%s, 'slug', g.%s) ORDER BY g.%s)
			FROM %s g
			JOIN %s cg ON g.%s = cg.%s
			WHERE cg.%s = c.%s
		), '[]') AS genres
	FROM %s c
`,
	schema.CoreComic.ID, schema.CoreComic.Title, schema.CoreComic.Slug,
	schema.CoreComic.Description, schema.CoreComic.Author, schema.CoreComic.Artist,
	schema.CoreComic.CoverURL, schema.CoreComic.Rating, schema.CoreComic.Status,
	schema.CoreComic.IsFeatured, schema.CoreComic.CreatedAt, schema.CoreComic.UpdatedAt,
	schema.CoreGenre.ID, schema.CoreGenre.Name, schema.CoreGenre.Slug, schema.CoreGenre.Name,
	schema.CoreGenre.Table,
	schema.ComicGenre.Table, schema.CoreGenre.ID, schema.ComicGenre.GenreID,
	schema.ComicGenre.ComicID, schema.CoreComic.ID,
	schema.CoreComic.Table,
)

func scanComic(row pgx.Row) (*Comic, error) {
	comic := &Comic{}
	var genresJSON []byte

	err := row.Scan(
		&comic.ID, &comic.Title, &comic.Slug,
		&comic.Description, &comic.Author, &comic.Artist,
		&comic.CoverURL, &comic.Rating, &comic.Status,
		&comic.IsFeatured, &comic.CreatedAt, &comic.UpdatedAt,
		&genresJSON,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(genresJSON, &comic.Genres); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal genres: %w", err)
	}
	return comic, nil
}

func (repository *PostgresRepository) queryComics(context context.Context, query string, args ...any) ([]*Comic, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_comics")
	}
	defer rows.Close()

	comics := make([]*Comic, 0)
	for rows.Next() {
		comic, err := scanComic(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_comic")
		}
		comics = append(comics, comic)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_comics")
	}
	return comics, nil
}

// # Lookups

func (repository *PostgresRepository) ListAll(context context.Context) ([]*Comic, error) {
	query := selectComics + fmt.Sprintf(` ORDER BY c.%s DESC`, schema.CoreComic.CreatedAt)
	return repository.queryComics(context, query)
}

func (repository *PostgresRepository) ListLatest(context context.Context, limit int) ([]*Comic, error) {
	query := selectComics + fmt.Sprintf(` ORDER BY c.%s DESC LIMIT $1`, schema.CoreComic.CreatedAt)
	return repository.queryComics(context, query, limit)
}

func (repository *PostgresRepository) FindFeatured(context context.Context) (*Comic, error) {
	query := selectComics + fmt.Sprintf(` WHERE c.%s LIMIT 1`, schema.CoreComic.IsFeatured)

	comic, err := scanComic(repository.pool.QueryRow(context, query))
	if err != nil {
		return nil, dberr.Wrap(err, "featured comic")
	}
	return comic, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comic, error) {
	query := selectComics + fmt.Sprintf(` WHERE c.%s = $1`, schema.CoreComic.ID)

	comic, err := scanComic(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceComic)
	}
	return comic, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Comic, error) {
	query := selectComics + fmt.Sprintf(` WHERE c.%s = $1`, schema.CoreComic.Slug)

	comic, err := scanComic(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, resourceComic)
	}
	return comic, nil
}

// # Writes

func (repository *PostgresRepository) Create(context context.Context, comic *Comic) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s, %s
	`,
		schema.CoreComic.Table,
		schema.CoreComic.ID, schema.CoreComic.Title, schema.CoreComic.Slug, schema.CoreComic.Description,
		schema.CoreComic.Author, schema.CoreComic.Artist, schema.CoreComic.CoverURL,
		schema.CoreComic.Rating, schema.CoreComic.Status,
		schema.CoreComic.CreatedAt, schema.CoreComic.UpdatedAt,
	)

	return postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		err := transaction.QueryRow(context, query,
			comic.ID, comic.Title, comic.Slug, comic.Description,
			comic.Author, comic.Artist, comic.CoverURL,
			comic.Rating, comic.Status,
		).Scan(&comic.CreatedAt, &comic.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, resourceComic)
		}

		if len(comic.GenreIDs) > 0 {
			return updateJunction(context, transaction, comic.ID, comic.GenreIDs)
		}
		return nil
	})
}

func (repository *PostgresRepository) Update(context context.Context, comic *Comic) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $8
	`,
		schema.CoreComic.Table,
		schema.CoreComic.Title, schema.CoreComic.Slug, schema.CoreComic.Description,
		schema.CoreComic.Author, schema.CoreComic.Artist, schema.CoreComic.Rating, schema.CoreComic.Status,
		schema.CoreComic.UpdatedAt,
		schema.CoreComic.ID,
	)

	return postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		result, err := transaction.Exec(context, query,
			comic.Title, comic.Slug, comic.Description,
			comic.Author, comic.Artist, comic.Rating, comic.Status,
			comic.ID,
		)
		if err != nil {
			return dberr.Wrap(err, resourceComic)
		}
		if result.RowsAffected() == 0 {
			return apperr.NotFound(resourceComic)
		}

		if comic.GenreIDs != nil {
			return updateJunction(context, transaction, comic.ID, comic.GenreIDs)
		}
		return nil
	})
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreComic.Table, schema.CoreComic.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceComic)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(resourceComic)
	}
	return nil
}

func (repository *PostgresRepository) SetGenres(context context.Context, comicID string, genreIDs []int) error {
	return postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		if err := lockComic(context, transaction, comicID); err != nil {
			return err
		}
		return updateJunction(context, transaction, comicID, genreIDs)
	})
}

func (repository *PostgresRepository) SetFeatured(context context.Context, id string, featured bool) error {
	clearOthers := fmt.Sprintf(`UPDATE %s SET %s = FALSE WHERE %s AND %s <> $1`,
		schema.CoreComic.Table, schema.CoreComic.IsFeatured, schema.CoreComic.IsFeatured, schema.CoreComic.ID)
	setFlag := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		schema.CoreComic.Table, schema.CoreComic.IsFeatured, schema.CoreComic.UpdatedAt, schema.CoreComic.ID)

	return postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		if featured {
			if _, err := transaction.Exec(context, clearOthers, id); err != nil {
				return dberr.Wrap(err, resourceComic)
			}
		}

		result, err := transaction.Exec(context, setFlag, featured, id)
		if err != nil {
			return dberr.Wrap(err, resourceComic)
		}
		if result.RowsAffected() == 0 {
			return apperr.NotFound(resourceComic)
		}
		return nil
	})
}

func (repository *PostgresRepository) UpdateCover(context context.Context, id, coverURL string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		schema.CoreComic.Table, schema.CoreComic.CoverURL, schema.CoreComic.UpdatedAt, schema.CoreComic.ID)

	result, err := repository.pool.Exec(context, query, coverURL, id)
	if err != nil {
		return dberr.Wrap(err, resourceComic)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(resourceComic)
	}
	return nil
}

// # Junction Helpers

// lockComic takes a row lock so concurrent genre syncs on one comic serialize.
func lockComic(context context.Context, transaction pgx.Tx, comicID string) error {
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 FOR UPDATE`, schema.CoreComic.Table, schema.CoreComic.ID)

	var found int
	if err := transaction.QueryRow(context, query, comicID).Scan(&found); err != nil {
		return dberr.Wrap(err, resourceComic)
	}
	return nil
}

/*
updateJunction replaces the genre associations of a comic.

Existing rows are cleared, then the new set is queued as one pgx.Batch.
Must run inside the caller's transaction.
*/
func updateJunction(context context.Context, transaction pgx.Tx, comicID string, genreIDs []int) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.ComicGenre.Table, schema.ComicGenre.ComicID)
	if _, err := transaction.Exec(context, deleteQuery, comicID); err != nil {
		return dberr.Wrap(err, "genre association")
	}

	if len(genreIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.ComicGenre.Table, schema.ComicGenre.ComicID, schema.ComicGenre.GenreID)

	batch := &pgx.Batch{}
	for _, genreID := range genreIDs {
		batch.Queue(insertQuery, comicID, genreID)
	}

	if err := transaction.SendBatch(context, batch).Close(); err != nil {
		return dberr.Wrap(err, "genre association")
	}
	return nil
}
