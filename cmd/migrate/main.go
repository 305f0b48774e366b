package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/5w1tchy/isbn-books/internal/config"
	"github.com/5w1tchy/isbn-books/internal/migrations"
	"github.com/5w1tchy/isbn-books/internal/repository/sqlconnect"
	"github.com/5w1tchy/isbn-books/internal/store/dbx"
	"github.com/alecthomas/kong"
)

// CLI is the migrate command tree. Connection settings come from the same
// environment as the server and can be overridden by flags.
type CLI struct {
	Driver string `help:"database/sql driver (pgx or sqlite)" env:"DB_DRIVER" default:"pgx"`
	DSN    string `help:"connection string" env:"DATABASE_URL"`

	Up     UpCmd     `cmd:"" help:"Apply all pending migrations"`
	Down   DownCmd   `cmd:"" help:"Roll back the most recent migration"`
	Status StatusCmd `cmd:"" help:"Show applied and pending migrations"`
	Create CreateCmd `cmd:"" help:"Write a new empty SQL migration"`
	Seed   SeedCmd   `cmd:"" help:"Insert the fixture books"`
}

type UpCmd struct{}
type DownCmd struct{}
type StatusCmd struct{}

type CreateCmd struct {
	Name string `arg:"" help:"migration name, e.g. add_books_index"`
	Dir  string `short:"d" help:"directory to write into" default:"internal/migrations"`
}

// db is opened lazily; create never needs a connection.
type db struct {
	cli     *CLI
	conn    *sql.DB
	dialect dbx.Dialect
}

func (d *db) open(ctx context.Context) (*sql.DB, dbx.Dialect, error) {
	if d.conn == nil {
		conn, dialect, err := sqlconnect.ConnectDB(ctx, d.cli.Driver, d.cli.DSN)
		if err != nil {
			return nil, "", err
		}
		d.conn, d.dialect = conn, dialect
	}
	return d.conn, d.dialect, nil
}

func (d *db) close() {
	if d.conn != nil {
		d.conn.Close()
	}
}

func (c *UpCmd) Run(ctx context.Context, d *db) error {
	conn, dialect, err := d.open(ctx)
	if err != nil {
		return err
	}
	return migrations.Up(conn, dialect.Goose())
}

func (c *DownCmd) Run(ctx context.Context, d *db) error {
	conn, dialect, err := d.open(ctx)
	if err != nil {
		return err
	}
	return migrations.Down(conn, dialect.Goose())
}

func (c *StatusCmd) Run(ctx context.Context, d *db) error {
	conn, dialect, err := d.open(ctx)
	if err != nil {
		return err
	}
	return migrations.Status(conn, dialect.Goose())
}

func (c *CreateCmd) Run() error {
	return migrations.Create(c.Dir, c.Name)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.NewLogger(os.Stdout))

	cli := CLI{}
	d := &db{cli: &cli}
	kctx := kong.Parse(&cli,
		kong.Name("migrate"),
		kong.Description("Manage the books database schema."),
		kong.UsageOnError(),
		kong.Bind(d),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	defer d.close()

	if err := kctx.Run(); err != nil {
		slog.Error("command failed", "command", kctx.Command(), "err", err)
		d.close()
		os.Exit(1)
	}
}
