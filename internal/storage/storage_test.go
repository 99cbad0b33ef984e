package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/archiver/internal/day"
	apperrors "github.com/julianstephens/archiver/internal/errors"
)

func TestOpenDefaultSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "archive.db")

	store, err := Open(ctx, Config{Path: path})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if store.Path() != path {
		t.Errorf("Path() = %q, want %q", store.Path(), path)
	}
	if _, err := store.AddEntry(ctx, day.MustParse("2024-06-01"), "hello"); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Days != 1 || stats.Entries != 1 {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestOpenSchemaDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	if _, err := Open(ctx, Config{Path: filepath.Join(dir, "a.db"), SchemaDir: filepath.Join(dir, "missing")}); !errors.Is(err, apperrors.ErrSchema) {
		t.Errorf("missing schema dir error = %v, want ErrSchema", err)
	}

	file := filepath.Join(dir, "file.sql")
	if err := os.WriteFile(file, []byte("SELECT 1;"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := Open(ctx, Config{Path: filepath.Join(dir, "b.db"), SchemaDir: file}); !errors.Is(err, apperrors.ErrSchema) {
		t.Errorf("non-directory schema dir error = %v, want ErrSchema", err)
	}

	empty := filepath.Join(dir, "empty")
	if err := os.Mkdir(empty, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	store, err := Open(ctx, Config{Path: filepath.Join(dir, "c.db"), SchemaDir: empty})
	if err != nil {
		t.Fatalf("Open with empty schema dir failed: %v", err)
	}
	defer store.Close()

	if _, err := store.ListDays(ctx, ""); !errors.Is(err, apperrors.ErrStore) {
		t.Errorf("ListDays without tables error = %v, want ErrStore", err)
	}
}
