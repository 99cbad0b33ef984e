package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/archiver/internal/day"
	"github.com/julianstephens/archiver/internal/models"
	"github.com/julianstephens/archiver/internal/storage"
)

// DaysLoadedMsg carries a ListDays result for the filter it was asked with.
type DaysLoadedMsg struct {
	Filter  string
	Records []models.DayRecord
	Err     error
}

// EntriesLoadedMsg carries the entries of one day.
type EntriesLoadedMsg struct {
	Day     day.Day
	Entries []models.Entry
	Err     error
}

type EntryAddedMsg struct {
	Entry models.Entry
	Err   error
}

type DayAddedMsg struct {
	Record models.DayRecord
	Err    error
}

type EntryDeletedMsg struct {
	ID      string
	Deleted bool
	Err     error
}

type DayDeletedMsg struct {
	Day     day.Day
	Deleted bool
	Err     error
}

func loadDays(ctx context.Context, store storage.Provider, filter string) tea.Cmd {
	return func() tea.Msg {
		records, err := store.ListDays(ctx, filter)
		return DaysLoadedMsg{Filter: filter, Records: records, Err: err}
	}
}

func loadEntries(ctx context.Context, store storage.Provider, d day.Day) tea.Cmd {
	return func() tea.Msg {
		entries, err := store.GetEntries(ctx, d)
		return EntriesLoadedMsg{Day: d, Entries: entries, Err: err}
	}
}

func addEntry(ctx context.Context, store storage.Provider, d day.Day, content string) tea.Cmd {
	return func() tea.Msg {
		entry, err := store.AddEntry(ctx, d, content)
		return EntryAddedMsg{Entry: entry, Err: err}
	}
}

func addDay(ctx context.Context, store storage.Provider, d day.Day) tea.Cmd {
	return func() tea.Msg {
		rec, err := store.UpsertDay(ctx, d)
		return DayAddedMsg{Record: rec, Err: err}
	}
}

func deleteEntry(ctx context.Context, store storage.Provider, id string) tea.Cmd {
	return func() tea.Msg {
		deleted, err := store.DeleteEntry(ctx, id)
		return EntryDeletedMsg{ID: id, Deleted: deleted, Err: err}
	}
}

func deleteDay(ctx context.Context, store storage.Provider, d day.Day, cascade bool) tea.Cmd {
	return func() tea.Msg {
		deleted, err := store.DeleteDay(ctx, d, cascade)
		return DayDeletedMsg{Day: d, Deleted: deleted, Err: err}
	}
}
