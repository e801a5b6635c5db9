package database

import (
	"database/sql"
	"fmt"

	"graphql-crm/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// RunMigrations applies any pending schema migrations from the embedded
// migration files and logs the resulting schema version.
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	logger.Info("Database schema is up to date", zap.Int64("version", version))
	return nil
}
