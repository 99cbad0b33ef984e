package storage

import (
	"context"

	"github.com/julianstephens/archiver/internal/day"
	"github.com/julianstephens/archiver/internal/models"
)

// Provider is the archive as seen by the shells. Implementations own their
// connection and never expose it.
type Provider interface {
	// Lifecycle
	Close() error
	Migrate(ctx context.Context, progress func(string)) (int, error)

	// Days
	ListDays(ctx context.Context, filter string) ([]models.DayRecord, error)
	GetDay(ctx context.Context, d day.Day) (models.DayRecord, error)
	UpsertDay(ctx context.Context, d day.Day) (models.DayRecord, error)
	DeleteDay(ctx context.Context, d day.Day, cascade bool) (bool, error)

	// Entries
	GetEntries(ctx context.Context, d day.Day) ([]models.Entry, error)
	AddEntry(ctx context.Context, d day.Day, content string) (models.Entry, error)
	UpdateEntry(ctx context.Context, id, content string) (models.Entry, error)
	DeleteEntry(ctx context.Context, id string) (bool, error)
	SearchEntries(ctx context.Context, term string) ([]models.Entry, error)

	// Utils
	Stats(ctx context.Context) (models.Stats, error)
	Path() string
}
