package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/5w1tchy/isbn-books/internal/models"
	"github.com/5w1tchy/isbn-books/internal/repo/booksrepo"
	"github.com/5w1tchy/isbn-books/internal/store/dbx"
)

var fixtures = []models.Book{
	{
		ISBN:      "0691161518",
		AmazonURL: "http://a.co/eobPtX2",
		Author:    "Matthew Lane",
		Language:  "English",
		Pages:     264,
		Publisher: "Princeton University Press",
		Title:     "Power-Up: Unlocking the Hidden Mathematics in Video Games",
		Year:      2017,
	},
}

type SeedCmd struct{}

// Run inserts every fixture in one transaction. Books already present are
// left as they are.
func (c *SeedCmd) Run(ctx context.Context, d *db) error {
	conn, dialect, err := d.open(ctx)
	if err != nil {
		return err
	}
	inserted, err := seed(ctx, conn, dialect)
	if err != nil {
		return err
	}
	slog.Info("seeded books", "inserted", inserted, "fixtures", len(fixtures))
	return nil
}

func seed(ctx context.Context, conn *sql.DB, dialect dbx.Dialect) (int, error) {
	inserted := 0
	err := dbx.WithinTx(ctx, conn, func(tx *sql.Tx) error {
		repo := booksrepo.New(conn, dialect).WithTx(tx)
		for _, b := range fixtures {
			if _, err := repo.FetchByISBN(ctx, b.ISBN); err == nil {
				continue
			} else if !errors.Is(err, booksrepo.ErrNotFound) {
				return err
			}
			if _, err := repo.Create(ctx, b); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	return inserted, err
}
