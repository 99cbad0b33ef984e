// Package projection turns store results into rows for the shells. Every
// function is pure and leaves its input untouched.
package projection

import (
	"fmt"
	"slices"

	"github.com/julianstephens/archiver/internal/constants"
	"github.com/julianstephens/archiver/internal/day"
	"github.com/julianstephens/archiver/internal/models"
)

// DayRow is one line of the day list.
type DayRow struct {
	Day         day.Day
	Title       string
	Key         string
	Description string
	EntryCount  int
}

// EntryRow is one entry of the selected day.
type EntryRow struct {
	ID      string
	Time    string
	Content string
	Edited  bool
}

// DayGroup holds the entries recorded on one day.
type DayGroup struct {
	Day     day.Day
	Title   string
	Entries []EntryRow
}

// Days orders records chronologically and labels them.
func Days(records []models.DayRecord) []DayRow {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b models.DayRecord) int {
		return a.Day.Compare(b.Day)
	})

	rows := make([]DayRow, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, DayRow{
			Day:         r.Day,
			Title:       r.Day.Display(),
			Key:         r.Day.Canonical(),
			Description: CountLabel(r.EntryCount),
			EntryCount:  r.EntryCount,
		})
	}
	return rows
}

// CountLabel describes how many entries a day holds.
func CountLabel(n int) string {
	switch n {
	case 0:
		return constants.NoEntriesLabel
	case 1:
		return constants.OneEntryLabel
	default:
		return fmt.Sprintf(constants.ManyEntriesLabel, n)
	}
}

// Entries orders entries by creation time, then ID.
func Entries(entries []models.Entry) []EntryRow {
	sorted := sortEntries(entries)

	rows := make([]EntryRow, 0, len(sorted))
	for _, e := range sorted {
		rows = append(rows, entryRow(e))
	}
	return rows
}

// Header is the title of the entries pane.
func Header(d day.Day) string {
	if d.IsZero() {
		return constants.EntriesHeader
	}
	return fmt.Sprintf(constants.EntriesHeaderFor, d.Display())
}

// Group buckets entries by day in chronological order.
func Group(entries []models.Entry) []DayGroup {
	sorted := sortEntries(entries)
	slices.SortStableFunc(sorted, func(a, b models.Entry) int {
		return a.Day.Compare(b.Day)
	})

	var groups []DayGroup
	for _, e := range sorted {
		if n := len(groups); n == 0 || groups[n-1].Day != e.Day {
			groups = append(groups, DayGroup{Day: e.Day, Title: e.Day.Display()})
		}
		last := &groups[len(groups)-1]
		last.Entries = append(last.Entries, entryRow(e))
	}
	return groups
}

func sortEntries(entries []models.Entry) []models.Entry {
	sorted := slices.Clone(entries)
	// Equal timestamps keep the order the store returned them in.
	slices.SortStableFunc(sorted, func(a, b models.Entry) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return sorted
}

func entryRow(e models.Entry) EntryRow {
	return EntryRow{
		ID:      e.ID,
		Time:    e.CreatedAt.Local().Format(constants.TimeFormat),
		Content: e.Content,
		Edited:  e.Edited(),
	}
}
