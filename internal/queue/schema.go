package queue

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is stamped into the sqlite user_version header when the
// schema is created. Bump it when schema.sql changes; stale databases are
// refused rather than migrated since export jobs are cheap to re-enqueue.
const schemaVersion = 1

// ErrSchemaMismatch reports a job database written by an incompatible
// lyricdrop build.
var ErrSchemaMismatch = errors.New("job database schema mismatch")

func (s *Store) initSchema(ctx context.Context) error {
	var stamped int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&stamped); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	switch stamped {
	case schemaVersion:
		return nil
	case 0:
		var tables int
		err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='export_jobs'",
		).Scan(&tables)
		if err != nil {
			return fmt.Errorf("inspect job database: %w", err)
		}
		if tables != 0 {
			return fmt.Errorf("%w: database predates version stamping, delete %s to recreate it",
				ErrSchemaMismatch, s.path)
		}
		return s.createSchema(ctx)
	default:
		return fmt.Errorf("%w: found version %d, want %d (run 'lyricdrop export clear' or delete %s)",
			ErrSchemaMismatch, stamped, schemaVersion, s.path)
	}
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	// PRAGMA takes no bind parameters; schemaVersion is a trusted constant.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("stamp schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
