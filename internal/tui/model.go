package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/archiver/internal/constants"
	"github.com/julianstephens/archiver/internal/day"
	"github.com/julianstephens/archiver/internal/projection"
	"github.com/julianstephens/archiver/internal/storage"
	"github.com/julianstephens/archiver/internal/tui/components/daylist"
	"github.com/julianstephens/archiver/internal/tui/components/entrylist"
)

type SessionState int

const (
	StateBrowse SessionState = iota
	StateSearch
	StateAddEntry
	StateNewDay
	StateConfirmDeleteDay
)

type Focus int

const (
	FocusDays Focus = iota
	FocusEntries
)

// EntryFormModel backs the add-entry form.
type EntryFormModel struct {
	Content string
}

// DayFormModel backs the new-day form.
type DayFormModel struct {
	Date string
}

// ConfirmationFormModel backs the delete-day confirmation.
type ConfirmationFormModel struct {
	Message   string
	Confirmed bool
}

// Options configures the shell.
type Options struct {
	// CascadeDelete removes a day together with its entries when confirmed.
	CascadeDelete bool
}

type Model struct {
	ctx     context.Context
	store   storage.Provider
	opts    Options
	state   SessionState
	focus   Focus
	keys    KeyMap
	help    help.Model
	search  textinput.Model
	days    daylist.Model
	entries entrylist.Model

	// rows is the last projected day list; selected is the day whose
	// entries are shown.
	rows     []projection.DayRow
	selected day.Day

	form             *huh.Form
	entryForm        *EntryFormModel
	dayForm          *DayFormModel
	confirmationForm *ConfirmationFormModel
	pendingDelete    day.Day

	status   string
	err      error
	quitting bool
	width    int
	height   int
}

func NewModel(ctx context.Context, store storage.Provider, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = constants.SearchPlaceholder
	ti.Prompt = "/ "
	ti.CharLimit = 10

	return Model{
		ctx:     ctx,
		store:   store,
		opts:    opts,
		state:   StateBrowse,
		focus:   FocusDays,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		search:  ti,
		days:    daylist.New(nil, 0, 0),
		entries: entrylist.New(0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return loadDays(m.ctx, m.store, "")
}

// Filter returns the current search text.
func (m Model) Filter() string {
	return m.search.Value()
}

// Selected returns the day whose entries are shown.
func (m Model) Selected() day.Day {
	return m.selected
}

// Rows returns the projected day list.
func (m Model) Rows() []projection.DayRow {
	return m.rows
}

func (m Model) State() SessionState {
	return m.state
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateSearch:
		return []key.Binding{m.keys.Escape}
	case StateBrowse:
		if m.focus == FocusEntries {
			return []key.Binding{m.keys.Tab, m.keys.AddEntry, m.keys.DeleteEntry, m.keys.Quit, m.keys.Help}
		}
		return []key.Binding{m.keys.Search, m.keys.Tab, m.keys.AddEntry, m.keys.NewDay, m.keys.DeleteDay, m.keys.Quit, m.keys.Help}
	}
	return nil
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

// Run starts the full-screen shell and blocks until it exits.
func Run(ctx context.Context, store storage.Provider, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, store, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
