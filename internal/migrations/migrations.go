package migrations

import (
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var FS embed.FS

// Up applies every embedded migration. dialect is a goose dialect name
// ("postgres" or "sqlite3").
func Up(db *sql.DB, dialect string) error {
	if err := prepare(dialect); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

// Down rolls back the most recent migration.
func Down(db *sql.DB, dialect string) error {
	if err := prepare(dialect); err != nil {
		return err
	}
	return goose.Down(db, ".")
}

// Status prints applied/pending migrations through goose's logger.
func Status(db *sql.DB, dialect string) error {
	if err := prepare(dialect); err != nil {
		return err
	}
	return goose.Status(db, ".")
}

// Create writes the next sequentially numbered SQL migration into dir (a
// source checkout path, not the embedded FS).
func Create(dir, name string) error {
	goose.SetBaseFS(nil)
	goose.SetSequential(true)
	return goose.Create(nil, dir, name, "sql")
}

// Quiet silences goose output; tests call it before Up.
func Quiet() {
	goose.SetLogger(goose.NopLogger())
}

func prepare(dialect string) error {
	goose.SetBaseFS(FS)
	return goose.SetDialect(dialect)
}
