package storage

import (
	"context"
	"fmt"
	"os"

	apperrors "github.com/julianstephens/archiver/internal/errors"
	"github.com/julianstephens/archiver/internal/storage/sqlite"
)

var _ Provider = (*sqlite.Store)(nil)

// Config selects the archive file and, optionally, an external schema
// directory of NNN_name.sql scripts.
type Config struct {
	Path      string
	SchemaDir string
	Progress  func(string)
}

// Open returns the SQLite archive described by cfg.
func Open(ctx context.Context, cfg Config) (Provider, error) {
	opts := sqlite.Options{Path: cfg.Path, Progress: cfg.Progress}

	if cfg.SchemaDir != "" {
		info, err := os.Stat(cfg.SchemaDir)
		if err != nil {
			return nil, apperrors.NewStoreError(apperrors.ErrSchema, "open", cfg.SchemaDir, err)
		}
		if !info.IsDir() {
			return nil, apperrors.NewStoreError(apperrors.ErrSchema, "open", cfg.SchemaDir, fmt.Errorf("not a directory"))
		}
		opts.SchemaFS = os.DirFS(cfg.SchemaDir)
	}

	store, err := sqlite.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	return store, nil
}
