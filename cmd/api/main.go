package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"inkwell-backend/internal/adapters/httpapi"
	"inkwell-backend/internal/adapters/postgres"
	pgpostrepo "inkwell-backend/internal/adapters/postgres/postrepo"
	pguserrepo "inkwell-backend/internal/adapters/postgres/userrepo"
	"inkwell-backend/internal/app/posts"
	"inkwell-backend/internal/app/users"
	"inkwell-backend/internal/platform/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid config", "err", err)
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Single shared store handle for the whole process.
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{MaxConns: cfg.DBMaxConns})
	if err != nil {
		logger.Fatal("connect postgres", "err", err)
	}
	defer pool.Close()

	api := httpapi.NewServer(
		users.NewService(pguserrepo.NewRepo(pool)),
		posts.NewService(pgpostrepo.NewRepo(pool)),
		logger,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouter(api),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("api listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func newLogger(cfg config.Config) *log.Logger {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	opts := log.Options{
		ReportTimestamp: true,
		Level:           level,
	}
	if cfg.LogJSON {
		opts.Formatter = log.JSONFormatter
	}
	return log.NewWithOptions(os.Stderr, opts)
}
