package booksrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/5w1tchy/isbn-books/internal/models"
)

// List returns every book in storage order.
func (r *Repo) List(ctx context.Context) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookColumns+` FROM books`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) FetchByISBN(ctx context.Context, isbn string) (models.Book, error) {
	b, err := scanBook(r.db.QueryRowContext(ctx,
		r.q(`SELECT `+bookColumns+` FROM books WHERE isbn = $1`), isbn))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, ErrNotFound
	}
	return b, err
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n)
	return n, err
}
