package booksrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/5w1tchy/isbn-books/internal/models"
	"github.com/5w1tchy/isbn-books/internal/store/dbx"
)

// UpdateBookDTO carries replacement values for the non-key columns.
// Nil fields keep what is stored.
type UpdateBookDTO struct {
	AmazonURL *string
	Author    *string
	Language  *string
	Pages     *int
	Publisher *string
	Title     *string
	Year      *int
}

// Create inserts b and returns the stored row. A duplicate isbn yields ErrConflict.
func (r *Repo) Create(ctx context.Context, b models.Book) (models.Book, error) {
	row := r.db.QueryRowContext(ctx, r.q(`
		INSERT INTO books (`+bookColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+bookColumns),
		b.ISBN, b.AmazonURL, b.Author, b.Language, b.Pages, b.Publisher, b.Title, b.Year,
	)
	out, err := scanBook(row)
	if err != nil {
		if err = dbx.MapError(err); errors.Is(err, dbx.ErrUniqueViolation) {
			return models.Book{}, fmt.Errorf("%w: isbn %s", ErrConflict, b.ISBN)
		}
		return models.Book{}, err
	}
	return out, nil
}

// Update overwrites the provided columns of the row keyed by isbn.
func (r *Repo) Update(ctx context.Context, isbn string, dto UpdateBookDTO) (models.Book, error) {
	row := r.db.QueryRowContext(ctx, r.q(`
		UPDATE books SET
			amazon_url = COALESCE($1, amazon_url),
			author     = COALESCE($2, author),
			language   = COALESCE($3, language),
			pages      = COALESCE($4, pages),
			publisher  = COALESCE($5, publisher),
			title      = COALESCE($6, title),
			year       = COALESCE($7, year)
		WHERE isbn = $8
		RETURNING `+bookColumns),
		nullable(dto.AmazonURL), nullable(dto.Author), nullable(dto.Language), nullable(dto.Pages),
		nullable(dto.Publisher), nullable(dto.Title), nullable(dto.Year), isbn,
	)
	out, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, ErrNotFound
	}
	return out, err
}

func (r *Repo) Delete(ctx context.Context, isbn string) error {
	res, err := r.db.ExecContext(ctx, r.q(`DELETE FROM books WHERE isbn = $1`), isbn)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
