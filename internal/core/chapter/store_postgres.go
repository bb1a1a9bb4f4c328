// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/komik/internal/platform/apperr"
	"github.com/taibuivan/komik/internal/platform/database/schema"
	"github.com/taibuivan/komik/internal/platform/dberr"
	"github.com/taibuivan/komik/internal/platform/postgres"
)

const (
	resourceChapter = "chapter"
	resourcePage    = "page"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed chapter store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var chapterColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s",
	schema.CoreChapter.ID, schema.CoreChapter.ComicID, schema.CoreChapter.ChapterNumber,
	schema.CoreChapter.Title, schema.CoreChapter.CreatedAt, schema.CoreChapter.UpdatedAt)

var pageColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s",
	schema.CorePage.ID, schema.CorePage.ChapterID, schema.CorePage.PageNumber,
	schema.CorePage.ImageURL, schema.CorePage.ObjectKey, schema.CorePage.CreatedAt)

func scanChapter(row pgx.Row) (*Chapter, error) {
	chapter := &Chapter{}
	err := row.Scan(&chapter.ID, &chapter.ComicID, &chapter.ChapterNumber,
		&chapter.Title, &chapter.CreatedAt, &chapter.UpdatedAt)
	return chapter, err
}

func scanPage(row pgx.Row) (*Page, error) {
	page := &Page{}
	err := row.Scan(&page.ID, &page.ChapterID, &page.PageNumber, &page.ImageURL, &page.ObjectKey, &page.CreatedAt)
	return page, err
}

// # Chapters

func (repository *PostgresRepository) ListByComic(context context.Context, comicID string) ([]*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		chapterColumns, schema.CoreChapter.Table, schema.CoreChapter.ComicID, schema.CoreChapter.ChapterNumber)

	rows, err := repository.pool.Query(context, query, comicID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapters")
	}
	defer rows.Close()

	chapters := make([]*Chapter, 0)
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_chapter")
		}
		chapters = append(chapters, chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_chapters")
	}
	return chapters, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		chapterColumns, schema.CoreChapter.Table, schema.CoreChapter.ID)

	chapter, err := scanChapter(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceChapter)
	}
	return chapter, nil
}

func (repository *PostgresRepository) Create(context context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		schema.CoreChapter.Table,
		schema.CoreChapter.ID, schema.CoreChapter.ComicID, schema.CoreChapter.ChapterNumber, schema.CoreChapter.Title,
		schema.CoreChapter.CreatedAt, schema.CoreChapter.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, chapter.ID, chapter.ComicID, chapter.ChapterNumber, chapter.Title).
		Scan(&chapter.CreatedAt, &chapter.UpdatedAt)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("comic")
		}
		return dberr.Wrap(err, resourceChapter)
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = NOW()
		WHERE %s = $3
		RETURNING %s
	`,
		schema.CoreChapter.Table,
		schema.CoreChapter.ChapterNumber, schema.CoreChapter.Title, schema.CoreChapter.UpdatedAt,
		schema.CoreChapter.ID,
		chapterColumns,
	)

	updated, err := scanChapter(repository.pool.QueryRow(context, query, chapter.ChapterNumber, chapter.Title, chapter.ID))
	if err != nil {
		return dberr.Wrap(err, resourceChapter)
	}

	*chapter = *updated
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreChapter.Table, schema.CoreChapter.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceChapter)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(resourceChapter)
	}
	return nil
}

// # Pages

func (repository *PostgresRepository) ListPages(context context.Context, chapterID string) ([]*Page, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		pageColumns, schema.CorePage.Table, schema.CorePage.ChapterID, schema.CorePage.PageNumber)

	rows, err := repository.pool.Query(context, query, chapterID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_pages")
	}
	defer rows.Close()

	pages := make([]*Page, 0)
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_page")
		}
		pages = append(pages, page)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_pages")
	}
	return pages, nil
}

func (repository *PostgresRepository) LastPageNumber(context context.Context, chapterID string) (int, error) {
	query := fmt.Sprintf(`SELECT COALESCE(MAX(%s), 0) FROM %s WHERE %s = $1`,
		schema.CorePage.PageNumber, schema.CorePage.Table, schema.CorePage.ChapterID)

	var last int
	if err := repository.pool.QueryRow(context, query, chapterID).Scan(&last); err != nil {
		return 0, dberr.Wrap(err, "last_page_number")
	}
	return last, nil
}

/*
InsertPages writes an upload batch.

All rows go through a single pgx.Batch inside a transaction so a failed row
leaves no partial batch behind.
*/
func (repository *PostgresRepository) InsertPages(context context.Context, pages []*Page) error {
	if len(pages) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`,
		schema.CorePage.Table,
		schema.CorePage.ID, schema.CorePage.ChapterID, schema.CorePage.PageNumber, schema.CorePage.ImageURL,
		schema.CorePage.ObjectKey, schema.CorePage.CreatedAt,
	)

	return postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, page := range pages {
			batch.Queue(query, page.ID, page.ChapterID, page.PageNumber, page.ImageURL, page.ObjectKey).QueryRow(func(row pgx.Row) error {
				return row.Scan(&page.CreatedAt)
			})
		}

		if err := transaction.SendBatch(context, batch).Close(); err != nil {
			if dberr.IsForeignKeyViolation(err) {
				return apperr.NotFound(resourceChapter)
			}
			return dberr.Wrap(err, resourcePage)
		}
		return nil
	})
}

func (repository *PostgresRepository) DeletePage(context context.Context, id string) (*Page, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`,
		schema.CorePage.Table, schema.CorePage.ID, pageColumns)

	page, err := scanPage(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourcePage)
	}
	return page, nil
}
