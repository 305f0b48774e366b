package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/5w1tchy/isbn-books/internal/store/dbx"
)

// Validate fails fast on configuration the server cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if _, err := dbx.DialectFor(c.DBDriver); err != nil {
		errs = append(errs, fmt.Errorf("DB_DRIVER: %w", err))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT=%d out of range", c.Port))
	}
	if c.MaxBodySize <= 0 {
		errs = append(errs, errors.New("MAX_BODY_SIZE must be > 0"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must be > 0 and RATE_LIMIT_BURST >= 1"))
	}
	if c.RateLimitWindowMax < 1 || c.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW_MAX must be >= 1 and RATE_LIMIT_WINDOW > 0"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be > 0"))
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		errs = append(errs, errors.New("TLS_CERT and TLS_KEY must be set together"))
	}
	if !slices.Contains([]string{"text", "json"}, c.LogFormat) {
		errs = append(errs, fmt.Errorf("LOG_FORMAT=%q, want text or json", c.LogFormat))
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	return errors.Join(errs...)
}

// HardeningWarnings returns non-fatal warnings you may want to log on startup.
func (c Config) HardeningWarnings() []string {
	var warns []string

	if c.DBDriver == "sqlite" || c.DBDriver == "sqlite3" {
		if strings.Contains(c.DatabaseURL, ":memory:") || strings.Contains(c.DatabaseURL, "mode=memory") {
			warns = append(warns, "DATABASE_URL is an in-memory SQLite database; data is lost on restart")
		}
	}
	if c.RedisURL == "" {
		warns = append(warns, "REDIS_URL not set; rate limits are per instance")
	}
	if c.ShutdownTimeout > time.Minute {
		warns = append(warns, fmt.Sprintf("SHUTDOWN_TIMEOUT=%s is > 1m; deploys may stall", c.ShutdownTimeout))
	}

	// Production-specific nudges
	if c.Production() {
		if c.DBDriver != "pgx" && c.DBDriver != "postgres" {
			warns = append(warns, "DB_DRIVER is not Postgres in production")
		}
		if strings.Contains(c.DatabaseURL, "sslmode=disable") {
			warns = append(warns, "DATABASE_URL uses sslmode=disable; prefer TLS to the database")
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			warns = append(warns, "REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
		if !c.TLS() {
			warns = append(warns, "TLS_CERT/TLS_KEY not set; terminate TLS in front of the server")
		}
		if slices.ContainsFunc(c.CORSOrigins, func(o string) bool { return strings.Contains(o, "localhost") }) {
			warns = append(warns, "CORS_ORIGINS allows localhost in production")
		}
	}
	return warns
}
