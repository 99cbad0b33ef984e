package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/archiver/internal/constants"
	apperrors "github.com/julianstephens/archiver/internal/errors"
	"github.com/julianstephens/archiver/internal/logger"
	"github.com/julianstephens/archiver/internal/migration"
	"github.com/julianstephens/archiver/migrations"
)

// Options configures Open.
type Options struct {
	// Path is the archive file. Its directory is created if missing.
	Path string
	// SchemaFS holds NNN_name.sql scripts. Nil selects the embedded schema.
	SchemaFS fs.FS
	// Now stamps new rows. Nil selects time.Now.
	Now func() time.Time
	// Progress receives schema application messages.
	Progress func(string)
}

// Store is the SQLite archive. It owns the only connection to the file.
type Store struct {
	path   string
	db     *sql.DB
	schema fs.FS
	now    func() time.Time

	// mu serializes writes; reads share it. Close takes it exclusively.
	mu sync.RWMutex
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DefaultSchema returns the embedded SQLite scripts.
func DefaultSchema() (fs.FS, error) {
	return fs.Sub(migrations.FS, "sqlite")
}

func dsn(path string) string {
	return fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", path, constants.SQLiteBusyTimeoutMs)
}

// Open connects to the archive at opts.Path and applies the schema.
// Connection failures wrap ErrConnection, schema failures wrap ErrSchema.
func Open(ctx context.Context, opts Options) (_ *Store, err error) {
	if opts.Path == "" {
		return nil, apperrors.NewStoreError(apperrors.ErrConnection, "open", "", errors.New("empty archive path"))
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0700); err != nil {
		return nil, apperrors.NewStoreError(apperrors.ErrConnection, "open", opts.Path, fmt.Errorf("failed to create archive directory: %w", err))
	}

	db, err := sql.Open(constants.SQLiteDriver, dsn(opts.Path))
	if err != nil {
		return nil, apperrors.NewStoreError(apperrors.ErrConnection, "open", opts.Path, err)
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	// One connection: writes are serialized and PRAGMAs apply everywhere.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, apperrors.NewStoreError(apperrors.ErrConnection, "open", opts.Path, err)
	}
	if _, err := db.ExecContext(ctx, "SELECT count(*) FROM sqlite_master"); err != nil {
		return nil, apperrors.NewStoreError(apperrors.ErrConnection, "open", opts.Path, err)
	}

	schema := opts.SchemaFS
	if schema == nil {
		if schema, err = DefaultSchema(); err != nil {
			return nil, apperrors.NewStoreError(apperrors.ErrSchema, "open", opts.Path, err)
		}
	}

	applied, err := migration.NewRunner(db, schema).ApplyMigrations(ctx, opts.Progress)
	if err != nil {
		return nil, apperrors.NewStoreError(apperrors.ErrSchema, "open", opts.Path, err)
	}
	logger.Debug("Archive opened", "path", opts.Path, "migrations_applied", applied)

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Store{
		path:   opts.Path,
		db:     db,
		schema: schema,
		now:    now,
	}, nil
}

// Close releases the connection. Later calls fail with ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	logger.Debug("Archive closed", "path", s.path)
	return err
}

// Path returns the archive file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(constants.TimestampFormat)
}

func parseTimestamp(value string) (time.Time, error) {
	return time.Parse(constants.TimestampFormat, value)
}

// read runs fn under the shared lock.
func (s *Store) read(op, key string, fn func(db *sql.DB) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return apperrors.NewStoreError(apperrors.ErrClosed, op, key, nil)
	}
	return wrap(op, key, fn(s.db))
}

// write runs fn in a transaction under the exclusive lock. Nothing is
// committed unless fn returns nil.
func (s *Store) write(ctx context.Context, op, key string, fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return apperrors.NewStoreError(apperrors.ErrClosed, op, key, nil)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStoreError(apperrors.ErrStore, op, key, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return wrap(op, key, err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStoreError(apperrors.ErrStore, op, key, fmt.Errorf("failed to commit: %w", err))
	}
	logger.Debug("Archive write", "op", op, "key", key)
	return nil
}

// wrap leaves StoreErrors alone and classifies everything else as ErrStore.
func wrap(op, key string, err error) error {
	if err == nil {
		return nil
	}
	var se *apperrors.StoreError
	if errors.As(err, &se) {
		return err
	}
	return apperrors.NewStoreError(apperrors.ErrStore, op, key, err)
}
