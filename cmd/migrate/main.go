package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/guesssays/med-platform/config"
	logs "github.com/guesssays/med-platform/internal/infra/log"
	"github.com/guesssays/med-platform/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
)

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "Maximum time allowed for the migration")
	flag.Parse()

	if err := run(*timeout); err != nil {
		slog.Error("Migration failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(timeout time.Duration) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return err
	}

	if cfg.Postgres == nil {
		return errors.New("postgres config is required")
	}

	db, err := postgres.Open(cfg, logger)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}
	logger.Info("Schema migrated", slog.Duration("elapsed", time.Since(start)))

	return nil
}
