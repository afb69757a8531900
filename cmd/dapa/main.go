package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	charmlog "charm.land/log/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dapamarket/dapa/config"
	"github.com/dapamarket/dapa/postgres"
	"github.com/dapamarket/dapa/postgres/migrator"
	"github.com/dapamarket/dapa/service"
	dapahttp "github.com/dapamarket/dapa/transport/http"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	errLogger := slog.New(charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
	}))
	infoLogger := slog.New(charmlog.NewWithOptions(os.Stdout, charmlog.Options{
		ReportTimestamp: true,
	}))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database connection pool: %w", err)
	}

	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	migrationStart := time.Now()
	infoLogger.Info("starting database migrations")

	if err := migrator.Migrate(context.Background(), dbPool, postgres.MigrationsFS); err != nil {
		return fmt.Errorf("migrate database schema: %w", err)
	}

	infoLogger.Info("finished database migrations", "took", time.Since(migrationStart))

	svc := service.New(postgres.New(dbPool, cfg.StoreTimeout), errLogger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: dapahttp.New(svc, errLogger),
	}

	infoLogger.Info("starting dapa server", "url", fmt.Sprintf("http://localhost:%d", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start dapa server: %w", err)
	}

	return nil
}
