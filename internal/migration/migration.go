package migration

import (
	"context"

	"tablens/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Statements returns the idempotent DDL in execution order.
func (r *MigrationRunner) Statements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS analysis_reports (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			fingerprint CHAR(64) NOT NULL,
			body JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_reports_fingerprint
			ON analysis_reports (fingerprint, created_at DESC)`,
	}
}

// Run executes all database migrations in one transaction
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("failed to begin migration", err)
	}
	defer tx.Rollback()

	for _, stmt := range r.Statements() {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.DatabaseError("failed to apply migration statement", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("failed to commit migration", err)
	}
	return nil
}
