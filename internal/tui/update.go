package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/archiver/internal/day"
	"github.com/julianstephens/archiver/internal/logger"
	"github.com/julianstephens/archiver/internal/projection"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case DaysLoadedMsg:
		return m, m.handleDaysLoaded(msg)
	case EntriesLoadedMsg:
		m.handleEntriesLoaded(msg)
		return m, nil
	case EntryAddedMsg:
		if msg.Err != nil {
			return m, m.fail(msg.Err)
		}
		m.status = "Eintrag gespeichert"
		return m, m.reload(true)
	case DayAddedMsg:
		if msg.Err != nil {
			return m, m.fail(msg.Err)
		}
		m.selected = msg.Record.Day
		m.status = fmt.Sprintf("%s angelegt", msg.Record.Day.Display())
		return m, m.reload(true)
	case EntryDeletedMsg:
		if msg.Err != nil {
			return m, m.fail(msg.Err)
		}
		if msg.Deleted {
			m.status = "Eintrag gelöscht"
		}
		return m, m.reload(true)
	case DayDeletedMsg:
		if msg.Err != nil {
			return m, m.fail(msg.Err)
		}
		if msg.Deleted {
			m.status = fmt.Sprintf("%s gelöscht", msg.Day.Display())
		}
		return m, m.reload(false)
	}

	switch m.state {
	case StateSearch:
		return m.updateSearch(msg)
	case StateAddEntry, StateNewDay, StateConfirmDeleteDay:
		return m.updateForm(msg)
	default:
		return m.updateBrowse(msg)
	}
}

func (m *Model) fail(err error) tea.Cmd {
	logger.Warn("Archive operation failed", "error", err)
	m.err = err
	return nil
}

// reload refreshes the day list for the current filter and, when entries
// is set, the entries of the selected day.
func (m *Model) reload(entries bool) tea.Cmd {
	cmds := []tea.Cmd{loadDays(m.ctx, m.store, m.search.Value())}
	if entries && !m.selected.IsZero() {
		cmds = append(cmds, loadEntries(m.ctx, m.store, m.selected))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleDaysLoaded(msg DaysLoadedMsg) tea.Cmd {
	// A newer filter is already in flight.
	if msg.Filter != m.search.Value() {
		return nil
	}
	if msg.Err != nil {
		return m.fail(msg.Err)
	}

	m.rows = projection.Days(msg.Records)
	cmd := m.days.SetRows(m.rows, m.selected)
	return tea.Batch(cmd, m.syncSelection())
}

func (m *Model) handleEntriesLoaded(msg EntriesLoadedMsg) {
	if msg.Day != m.selected {
		return
	}
	if msg.Err != nil {
		m.fail(msg.Err)
		return
	}
	m.entries.SetEntries(projection.Header(msg.Day), projection.Entries(msg.Entries))
}

// syncSelection requests the entries of the day under the cursor when it
// differs from the shown one.
func (m *Model) syncSelection() tea.Cmd {
	d, ok := m.days.Selected()
	if !ok {
		m.selected = day.Day{}
		m.entries.Clear()
		return nil
	}
	if d == m.selected {
		return nil
	}
	m.selected = d
	return loadEntries(m.ctx, m.store, d)
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(k, m.keys.Escape) || k.Type == tea.KeyEnter {
			m.state = StateBrowse
			m.search.Blur()
			return m, nil
		}
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		return m, tea.Batch(cmd, loadDays(m.ctx, m.store, after))
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.entries, cmd = m.entries.Update(msg)
		return m, cmd
	}

	m.err = nil
	m.status = ""

	switch {
	case key.Matches(k, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(k, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(k, m.keys.Search):
		m.state = StateSearch
		return m, m.search.Focus()
	case key.Matches(k, m.keys.Tab):
		if m.focus == FocusDays {
			m.focus = FocusEntries
		} else {
			m.focus = FocusDays
		}
		m.entries.Focus(m.focus == FocusEntries)
		return m, nil
	case key.Matches(k, m.keys.NewDay):
		m.dayForm = &DayFormModel{Date: day.Today().Canonical()}
		m.form = NewDayForm(m.dayForm)
		m.state = StateNewDay
		return m, m.form.Init()
	case key.Matches(k, m.keys.AddEntry):
		if m.selected.IsZero() {
			m.status = "Kein Tag ausgewählt"
			return m, nil
		}
		m.entryForm = &EntryFormModel{}
		m.form = NewEntryForm(m.entryForm, m.selected)
		m.state = StateAddEntry
		return m, m.form.Init()
	case key.Matches(k, m.keys.DeleteEntry):
		if m.focus != FocusEntries {
			m.status = "tab wechselt zu den Einträgen"
			return m, nil
		}
		if row, ok := m.entries.Selected(); ok {
			return m, deleteEntry(m.ctx, m.store, row.ID)
		}
		return m, nil
	case key.Matches(k, m.keys.DeleteDay):
		if m.selected.IsZero() {
			return m, nil
		}
		m.pendingDelete = m.selected
		prompt := fmt.Sprintf("%s löschen?", m.selected.Display())
		if m.opts.CascadeDelete {
			prompt = fmt.Sprintf("%s samt Einträgen löschen?", m.selected.Display())
		}
		m.confirmationForm = &ConfirmationFormModel{Message: prompt}
		m.form = NewConfirmationForm(m.confirmationForm)
		m.state = StateConfirmDeleteDay
		return m, m.form.Init()
	}

	if m.focus == FocusEntries {
		switch {
		case key.Matches(k, m.keys.Up):
			m.entries.MoveUp()
		case key.Matches(k, m.keys.Down):
			m.entries.MoveDown()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.days, cmd = m.days.Update(msg)
	return m, tea.Batch(cmd, m.syncSelection())
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds := []tea.Cmd{cmd}

	switch m.form.State {
	case huh.StateCompleted:
		cmds = append(cmds, m.completeForm())
		m.closeForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return m, tea.Batch(cmds...)
}

// completeForm turns a submitted form into a store command.
func (m *Model) completeForm() tea.Cmd {
	switch m.state {
	case StateAddEntry:
		return addEntry(m.ctx, m.store, m.selected, strings.TrimSpace(m.entryForm.Content))
	case StateNewDay:
		d, err := day.Parse(strings.TrimSpace(m.dayForm.Date))
		if err != nil {
			return m.fail(err)
		}
		return addDay(m.ctx, m.store, d)
	case StateConfirmDeleteDay:
		if m.confirmationForm.Confirmed {
			return deleteDay(m.ctx, m.store, m.pendingDelete, m.opts.CascadeDelete)
		}
	}
	return nil
}

func (m *Model) closeForm() {
	m.form = nil
	m.entryForm = nil
	m.dayForm = nil
	m.confirmationForm = nil
	m.pendingDelete = day.Day{}
	m.state = StateBrowse
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	left := max(width/3, 24)
	body := max(height-6, 3)
	m.days.SetSize(left-4, body-2)
	m.entries.SetSize(max(width-left-4, 10), body)
	m.search.Width = left - 6
}
