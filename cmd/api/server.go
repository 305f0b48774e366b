package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mw "github.com/5w1tchy/isbn-books/internal/api/middlewares"
	"github.com/5w1tchy/isbn-books/internal/api/router"
	"github.com/5w1tchy/isbn-books/internal/config"
	"github.com/5w1tchy/isbn-books/internal/repo/booksrepo"
	"github.com/5w1tchy/isbn-books/internal/repository/sqlconnect"
	"github.com/5w1tchy/isbn-books/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env", "../../.env")
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.NewLogger(os.Stdout))

	if err := cfg.Validate(); err != nil {
		return err
	}
	for _, w := range cfg.HardeningWarnings() {
		slog.Warn("config", "warning", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dialect, err := sqlconnect.ConnectDB(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("connected to database", "driver", cfg.DBDriver)

	rdb, err := cfg.NewRedis()
	if err != nil {
		return err
	}
	var limiters []utils.Middleware
	if rdb != nil {
		defer rdb.Close()
		// Fail fast if Redis isn't reachable
		if err := config.PingRedis(ctx, rdb, 3*time.Second); err != nil {
			return err
		}
		slog.Info("connected to redis")
		tb := mw.NewRedisTokenBucket(rdb, cfg.RateLimitRPS, cfg.RateLimitBurst, mw.PerIPScopeKey("tb"))
		sw := mw.NewRedisSlidingWindow(rdb, cfg.RateLimitWindowMax, cfg.RateLimitWindow, mw.PerIPKey("sw"))
		limiters = append(limiters, tb.Middleware, sw.Middleware)
	} else {
		mem := mw.NewMemoryRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, mw.PerIPScopeKey("mem"))
		limiters = append(limiters, mem.Middleware)
	}

	repo := booksrepo.New(db, dialect)

	chain := []utils.Middleware{
		mw.RequestID,
		mw.AccessLog,
		mw.Recovery,
		mw.ResponseTime,
		mw.SecurityHeaders(cfg.StrictSecurity),
		mw.Cors(cfg.CORSOrigins),
	}
	chain = append(chain, limiters...)
	chain = append(chain, mw.BodySizeLimit(cfg.MaxBodySize), mw.Compression)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           utils.ApplyMiddleware(router.Router(repo), chain...),
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server is running", "addr", server.Addr, "tls", cfg.TLS(), "env", cfg.AppEnv)
		if cfg.TLS() {
			errCh <- server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			errCh <- server.ListenAndServe()
		}
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
