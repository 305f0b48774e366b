package sqlconnect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/5w1tchy/isbn-books/internal/store/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// ConnectDB opens a pool for driver ("pgx" or "sqlite"), pings it and applies
// pool limits. The returned dialect tells repositories how to bind parameters.
func ConnectDB(ctx context.Context, driver, dsn string) (*sql.DB, dbx.Dialect, error) {
	if dsn == "" {
		return nil, "", fmt.Errorf("DATABASE_URL not set")
	}
	dialect, err := dbx.DialectFor(driver)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, "", err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, "", err
	}

	if dialect == dbx.SQLite {
		// every connection to an in-memory database sees its own empty database
		if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
			db.SetMaxOpenConns(1)
		}
		return db, dialect, nil
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, dialect, nil
}
