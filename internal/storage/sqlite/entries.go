package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/archiver/internal/day"
	apperrors "github.com/julianstephens/archiver/internal/errors"
	"github.com/julianstephens/archiver/internal/models"
)

const entryColumns = "id, day, content, created_at, updated_at"

// GetEntries returns the entries of d by creation time. Unknown and empty
// days both yield an empty slice.
func (s *Store) GetEntries(ctx context.Context, d day.Day) ([]models.Entry, error) {
	var entries []models.Entry
	err := s.read("get entries", d.Canonical(), func(db *sql.DB) error {
		var err error
		entries, err = queryEntries(ctx, db,
			"SELECT "+entryColumns+" FROM entries WHERE day = ? ORDER BY created_at ASC, rowid ASC",
			d.Canonical())
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// AddEntry registers d if needed and records content on it.
func (s *Store) AddEntry(ctx context.Context, d day.Day, content string) (models.Entry, error) {
	if strings.TrimSpace(content) == "" {
		return models.Entry{}, apperrors.NewStoreError(apperrors.ErrEmptyContent, "add entry", d.Canonical(), nil)
	}
	if d.IsZero() {
		return models.Entry{}, apperrors.NewStoreError(apperrors.ErrInvalidCalendarDate, "add entry", "", nil)
	}

	var entry models.Entry
	err := s.write(ctx, "add entry", d.Canonical(), func(tx *sql.Tx) error {
		now := s.timestamp()
		if err := upsertDay(ctx, tx, d, now); err != nil {
			return err
		}

		id := uuid.New().String()
		_, err := tx.ExecContext(ctx,
			"INSERT INTO entries ("+entryColumns+") VALUES (?, ?, ?, ?, ?)",
			id, d.Canonical(), content, now, now)
		if err != nil {
			return fmt.Errorf("failed to insert entry: %w", err)
		}

		entry, err = getEntry(ctx, tx, id)
		return err
	})
	return entry, err
}

// UpdateEntry replaces the content of an entry and bumps UpdatedAt.
func (s *Store) UpdateEntry(ctx context.Context, id, content string) (models.Entry, error) {
	if strings.TrimSpace(content) == "" {
		return models.Entry{}, apperrors.NewStoreError(apperrors.ErrEmptyContent, "update entry", id, nil)
	}

	var entry models.Entry
	err := s.write(ctx, "update entry", id, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE entries SET content = ?, updated_at = ? WHERE id = ?",
			content, s.timestamp(), id)
		if err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return apperrors.NewStoreError(apperrors.ErrEntryNotFound, "update entry", id, nil)
		}

		entry, err = getEntry(ctx, tx, id)
		return err
	})
	return entry, err
}

// DeleteEntry removes one entry. The result is false when id did not exist.
func (s *Store) DeleteEntry(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := s.write(ctx, "delete entry", id, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		deleted = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// SearchEntries returns entries whose content contains term, ignoring case,
// ordered by day and then creation time. An empty term matches everything.
// Every entry is read and matched in Go, so cost grows linearly with the
// archive; content has no index.
func (s *Store) SearchEntries(ctx context.Context, term string) ([]models.Entry, error) {
	term = strings.ToLower(strings.TrimSpace(term))

	matches := []models.Entry{}
	err := s.read("search entries", term, func(db *sql.DB) error {
		all, err := queryEntries(ctx, db,
			"SELECT "+entryColumns+" FROM entries ORDER BY day ASC, created_at ASC, rowid ASC")
		if err != nil {
			return err
		}
		// SQLite lower() only folds ASCII, so matching happens here.
		for _, e := range all {
			if strings.Contains(strings.ToLower(e.Content), term) {
				matches = append(matches, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func getEntry(ctx context.Context, q querier, id string) (models.Entry, error) {
	row := q.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM entries WHERE id = ?", id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entry{}, apperrors.NewStoreError(apperrors.ErrEntryNotFound, "get entry", id, nil)
	}
	return entry, err
}

func queryEntries(ctx context.Context, q querier, query string, args ...any) ([]models.Entry, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(row scanner) (models.Entry, error) {
	var (
		entry                models.Entry
		createdAt, updatedAt string
	)
	if err := row.Scan(&entry.ID, &entry.Day, &entry.Content, &createdAt, &updatedAt); err != nil {
		return models.Entry{}, err
	}

	var err error
	if entry.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return models.Entry{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if entry.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return models.Entry{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return entry, nil
}
