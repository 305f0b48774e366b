package booksrepo

import (
	"database/sql"

	"github.com/5w1tchy/isbn-books/internal/models"
	"github.com/5w1tchy/isbn-books/internal/store/dbx"
)

const bookColumns = `isbn, amazon_url, author, language, pages, publisher, title, year`

// Repo owns every query against the books table. It is built once at startup
// and shared by all handlers.
type Repo struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func New(db dbx.DBTX, dialect dbx.Dialect) *Repo {
	return &Repo{db: db, dialect: dialect}
}

// WithTx returns a Repo bound to tx, for callers that group several writes.
func (r *Repo) WithTx(tx *sql.Tx) *Repo {
	return &Repo{db: tx, dialect: r.dialect}
}

func (r *Repo) q(query string) string { return r.dialect.Rebind(query) }

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (models.Book, error) {
	var b models.Book
	err := s.Scan(&b.ISBN, &b.AmazonURL, &b.Author, &b.Language, &b.Pages, &b.Publisher, &b.Title, &b.Year)
	return b, err
}

// nullable turns an unset optional field into SQL NULL so COALESCE keeps the
// stored value.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
