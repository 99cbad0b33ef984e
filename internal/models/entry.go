package models

import (
	"time"

	"github.com/julianstephens/archiver/internal/day"
)

// DayRecord is the stored row for one registered day.
type DayRecord struct {
	Day        day.Day   `json:"day"`
	EntryCount int       `json:"entry_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Entry is one note recorded on a day.
type Entry struct {
	ID        string    `json:"id"`
	Day       day.Day   `json:"day"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Edited reports whether the content changed after creation.
func (e Entry) Edited() bool {
	return e.UpdatedAt.After(e.CreatedAt)
}

// Stats summarizes the archive for diagnostics.
type Stats struct {
	Days          int `json:"days"`
	Entries       int `json:"entries"`
	SchemaVersion int `json:"schema_version"`
}
