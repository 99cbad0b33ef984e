package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "github.com/julianstephens/archiver/internal/errors"
	"github.com/julianstephens/archiver/internal/migration"
	"github.com/julianstephens/archiver/internal/models"
)

// Stats counts days and entries and reports the applied schema version.
func (s *Store) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	err := s.read("stats", "", func(db *sql.DB) error {
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM days").Scan(&stats.Days); err != nil {
			return fmt.Errorf("failed to count days: %w", err)
		}
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&stats.Entries); err != nil {
			return fmt.Errorf("failed to count entries: %w", err)
		}

		version, err := migration.NewRunner(db, s.schema).GetCurrentVersion(ctx)
		if err != nil {
			return err
		}
		stats.SchemaVersion = version
		return nil
	})
	return stats, err
}

// Migrate applies any schema scripts added since Open. It returns the
// number applied.
func (s *Store) Migrate(ctx context.Context, progress func(string)) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return 0, apperrors.NewStoreError(apperrors.ErrClosed, "migrate", "", nil)
	}
	n, err := migration.NewRunner(s.db, s.schema).ApplyMigrations(ctx, progress)
	if err != nil {
		return n, apperrors.NewStoreError(apperrors.ErrSchema, "migrate", s.path, err)
	}
	return n, nil
}
