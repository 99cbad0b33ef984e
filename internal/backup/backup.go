// Package backup keeps rotating snapshots of the archive file next to it.
package backup

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/archiver/internal/constants"
	"github.com/julianstephens/archiver/internal/logger"
)

const stampLayout = "20060102-150405"

// ErrNotArchive is returned when a snapshot lacks the archive tables.
var ErrNotArchive = errors.New("not an archive database")

// Info describes one snapshot file.
type Info struct {
	Path      string
	Name      string
	Timestamp time.Time
	Seq       int
	Size      int64
}

// Manager creates, lists, rotates and restores snapshots of one archive.
type Manager struct {
	dbPath string
	dir    string
	keep   int
	now    func() time.Time
}

// NewManager manages snapshots in a "backups" directory beside dbPath.
func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		keep:   constants.MaxBackups,
		now:    time.Now,
	}
}

// Dir returns the snapshot directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Create snapshots the archive and prunes the oldest snapshots beyond the
// retention limit.
func (m *Manager) Create(ctx context.Context) (Info, error) {
	info, err := m.create(ctx)
	if err != nil {
		return Info{}, err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return info, nil
}

func (m *Manager) create(ctx context.Context) (Info, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return Info{}, fmt.Errorf("archive does not exist: %s", m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return Info{}, fmt.Errorf("failed to create backup directory: %w", err)
	}

	stamp := m.now().Format(stampLayout)
	seq, err := m.nextSeq(stamp)
	if err != nil {
		return Info{}, err
	}
	name := fileName(stamp, seq)
	path := filepath.Join(m.dir, name)

	if err := m.snapshot(ctx, path); err != nil {
		return Info{}, fmt.Errorf("failed to back up archive: %w", err)
	}

	st, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	ts, _ := time.ParseInLocation(stampLayout, stamp, time.Local)
	logger.Info("Backup created", "path", path, "size", st.Size())

	return Info{Path: path, Name: name, Timestamp: ts, Seq: seq, Size: st.Size()}, nil
}

// nextSeq returns one more than the highest sequence used for stamp. Pruned
// lower numbers are never reused, so the newest snapshot sorts first.
func (m *Manager) nextSeq(stamp string) (int, error) {
	files, err := os.ReadDir(m.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read backup directory: %w", err)
	}

	want, err := time.ParseInLocation(stampLayout, stamp, time.Local)
	if err != nil {
		return 0, err
	}
	next := 0
	for _, f := range files {
		ts, seq, ok := parseName(f.Name())
		if ok && ts.Equal(want) && seq >= next {
			next = seq + 1
		}
	}
	return next, nil
}

func fileName(stamp string, seq int) string {
	if seq == 0 {
		return constants.BackupFilePrefix + stamp + constants.BackupFileSuffix
	}
	return fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, seq, constants.BackupFileSuffix)
}

// parseName reverses fileName. ok is false for foreign files.
func parseName(name string) (ts time.Time, seq int, ok bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, 0, false
	}
	body := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	if len(body) > len(stampLayout) {
		rest, found := strings.CutPrefix(body[len(stampLayout):], "-")
		if !found {
			return time.Time{}, 0, false
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 {
			return time.Time{}, 0, false
		}
		seq = n
		body = body[:len(stampLayout)]
	}

	ts, err := time.ParseInLocation(stampLayout, body, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return ts, seq, true
}

// snapshot writes a consistent copy with VACUUM INTO, falling back to a
// file copy when the statement is unavailable.
func (m *Manager) snapshot(ctx context.Context, dest string) error {
	src, err := sql.Open(constants.SQLiteDriver, readOnlyDSN(m.dbPath))
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer src.Close()

	var count int
	if err := src.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("archive appears to be corrupted: %w", err)
	}

	if _, err := src.ExecContext(ctx, "VACUUM INTO ?", dest); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		src.Close()
		return copyFile(m.dbPath, dest)
	}
	return nil
}

// List returns snapshots newest first.
func (m *Manager) List() ([]Info, error) {
	files, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ts, seq, ok := parseName(f.Name())
		if !ok {
			continue
		}
		st, err := f.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.dir, f.Name()),
			Name:      f.Name(),
			Timestamp: ts,
			Seq:       seq,
			Size:      st.Size(),
		})
	}

	slices.SortFunc(backups, func(a, b Info) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(b.Seq, a.Seq)
	})
	return backups, nil
}

// Resolve accepts a snapshot file name or path and returns its path.
func (m *Manager) Resolve(ref string) (string, error) {
	candidates := []string{ref}
	if !filepath.IsAbs(ref) && filepath.Base(ref) == ref {
		candidates = append([]string{filepath.Join(m.dir, ref)}, ref)
	}
	for _, c := range candidates {
		if st, err := os.Stat(c); err == nil && !st.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("backup not found: %s", ref)
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) <= m.keep {
		return nil
	}

	for _, b := range backups[m.keep:] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
		logger.Debug("Removed old backup", "path", b.Path)
	}
	return nil
}

// Restore replaces the archive with the snapshot at path. The current
// archive is snapshotted first and that snapshot is returned. The archive
// must not be open while restoring.
func (m *Manager) Restore(ctx context.Context, path string) (Info, error) {
	if _, err := os.Stat(path); err != nil {
		return Info{}, fmt.Errorf("backup file does not exist: %s", path)
	}
	if err := verify(ctx, path); err != nil {
		return Info{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous Info
	if _, err := os.Stat(m.dbPath); err == nil {
		// No rotation here so the snapshot being restored cannot be pruned.
		if previous, err = m.create(ctx); err != nil {
			return Info{}, fmt.Errorf("failed to back up current archive before restore: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return Info{}, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tmp, "error", rmErr)
		}
		return Info{}, fmt.Errorf("failed to restore archive: %w", err)
	}

	logger.Info("Archive restored", "from", path, "previous", previous.Path)
	return previous, nil
}

// verify checks that path is a SQLite file holding the archive tables.
func verify(ctx context.Context, path string) error {
	db, err := sql.Open(constants.SQLiteDriver, readOnlyDSN(path))
	if err != nil {
		return err
	}
	defer db.Close()

	var tables int
	err = db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('days', 'entries')").Scan(&tables)
	if err != nil {
		return err
	}
	if tables != 2 {
		return ErrNotArchive
	}
	return nil
}

// readOnlyDSN opens path read-only. The driver only honors mode= on file: URIs.
func readOnlyDSN(path string) string {
	return "file:" + path + "?mode=ro"
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
