package migrations_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/5w1tchy/isbn-books/internal/migrations"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestUpDown_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migrations.Quiet()
	require.NoError(t, migrations.Up(db, "sqlite3"))
	// idempotent
	require.NoError(t, migrations.Up(db, "sqlite3"))

	_, err = db.Exec(`INSERT INTO books (isbn, amazon_url, author, language, pages, publisher, title, year)
		VALUES ('0691161518', 'http://a.co/eobPtX2', 'Matthew Lane', 'English', 264, 'Princeton University Press', 'Power-Up', 2017)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO books (isbn, amazon_url, author, language, pages, publisher, title, year)
		VALUES ('0691161518', 'x', 'x', 'x', 1, 'x', 'x', 1)`)
	require.Error(t, err, "isbn is the primary key")

	require.NoError(t, migrations.Down(db, "sqlite3"))
	_, err = db.Exec(`SELECT 1 FROM books`)
	require.Error(t, err)
}

func TestUp_UnknownDialect(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.Error(t, migrations.Up(db, "oracle"))
}
