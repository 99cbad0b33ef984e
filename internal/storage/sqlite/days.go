package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/archiver/internal/day"
	apperrors "github.com/julianstephens/archiver/internal/errors"
	"github.com/julianstephens/archiver/internal/models"
)

const listDaysQuery = `
	SELECT d.date, d.created_at, COUNT(e.id)
	FROM days d
	LEFT JOIN entries e ON e.day = d.date
	%s
	GROUP BY d.date, d.created_at
	ORDER BY d.date ASC`

// likeEscaper makes filter text match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(filter string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(filter)) + "%"
}

// ListDays returns registered days in chronological order. A non-empty
// filter keeps days whose canonical form contains it.
func (s *Store) ListDays(ctx context.Context, filter string) ([]models.DayRecord, error) {
	filter = strings.TrimSpace(filter)

	records := []models.DayRecord{}
	err := s.read("list days", filter, func(db *sql.DB) error {
		query := fmt.Sprintf(listDaysQuery, "")
		var args []any
		if filter != "" {
			query = fmt.Sprintf(listDaysQuery, `WHERE lower(d.date) LIKE ? ESCAPE '\'`)
			args = append(args, likePattern(filter))
		}

		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to query days: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			rec, err := scanDayRecord(rows)
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetDay returns one registered day, or ErrDayNotFound.
func (s *Store) GetDay(ctx context.Context, d day.Day) (models.DayRecord, error) {
	var rec models.DayRecord
	err := s.read("get day", d.Canonical(), func(db *sql.DB) error {
		var err error
		rec, err = getDay(ctx, db, d)
		return err
	})
	return rec, err
}

// UpsertDay registers d. Registering an existing day changes nothing.
func (s *Store) UpsertDay(ctx context.Context, d day.Day) (models.DayRecord, error) {
	if d.IsZero() {
		return models.DayRecord{}, apperrors.NewStoreError(apperrors.ErrInvalidCalendarDate, "upsert day", "", nil)
	}

	var rec models.DayRecord
	err := s.write(ctx, "upsert day", d.Canonical(), func(tx *sql.Tx) error {
		if err := upsertDay(ctx, tx, d, s.timestamp()); err != nil {
			return err
		}
		var err error
		rec, err = getDay(ctx, tx, d)
		return err
	})
	return rec, err
}

// DeleteDay removes d. Without cascade a day that still has entries is left
// untouched and ErrDayNotEmpty is returned. The result is false when d was
// not registered.
func (s *Store) DeleteDay(ctx context.Context, d day.Day, cascade bool) (bool, error) {
	var deleted bool
	err := s.write(ctx, "delete day", d.Canonical(), func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM days WHERE date = ?", d.Canonical()).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to look up day: %w", err)
		}
		if exists == 0 {
			return nil
		}

		var count int
		err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries WHERE day = ?", d.Canonical()).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to count entries: %w", err)
		}
		if count > 0 && !cascade {
			return apperrors.NewStoreError(apperrors.ErrDayNotEmpty, "delete day", d.Canonical(),
				fmt.Errorf("%d entries remain", count))
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE day = ?", d.Canonical()); err != nil {
			return fmt.Errorf("failed to delete entries: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM days WHERE date = ?", d.Canonical()); err != nil {
			return fmt.Errorf("failed to delete day: %w", err)
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func upsertDay(ctx context.Context, q querier, d day.Day, createdAt string) error {
	_, err := q.ExecContext(ctx,
		"INSERT INTO days (date, created_at) VALUES (?, ?) ON CONFLICT(date) DO NOTHING",
		d.Canonical(), createdAt)
	if err != nil {
		return fmt.Errorf("failed to register day: %w", err)
	}
	return nil
}

func getDay(ctx context.Context, q querier, d day.Day) (models.DayRecord, error) {
	row := q.QueryRowContext(ctx, fmt.Sprintf(listDaysQuery, "WHERE d.date = ?"), d.Canonical())
	rec, err := scanDayRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DayRecord{}, apperrors.NewStoreError(apperrors.ErrDayNotFound, "get day", d.Canonical(), nil)
	}
	return rec, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDayRecord(row scanner) (models.DayRecord, error) {
	var (
		rec       models.DayRecord
		createdAt string
	)
	if err := row.Scan(&rec.Day, &createdAt, &rec.EntryCount); err != nil {
		return models.DayRecord{}, err
	}

	t, err := parseTimestamp(createdAt)
	if err != nil {
		return models.DayRecord{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	rec.CreatedAt = t
	return rec, nil
}
