package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	_ "logisticshub/internal/db/migrations"
)

// MigrationsDir is only used by goose to label Go migrations.
const MigrationsDir = "migrations"

func setupGoose() error {
	goose.SetBaseFS(nil)
	return goose.SetDialect("mysql")
}

func MigrateUp(ctx context.Context, conn *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, conn, MigrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func MigrateDown(ctx context.Context, conn *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, conn, MigrationsDir); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}

func MigrateStatus(ctx context.Context, conn *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	return goose.StatusContext(ctx, conn, MigrationsDir)
}
