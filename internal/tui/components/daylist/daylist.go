package daylist

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/archiver/internal/constants"
	"github.com/julianstephens/archiver/internal/day"
	"github.com/julianstephens/archiver/internal/projection"
)

// Item is one day row in the list.
type Item struct {
	Row projection.DayRow
}

func (i Item) Title() string       { return i.Row.Title }
func (i Item) Description() string { return i.Row.Description }
func (i Item) FilterValue() string { return i.Row.Key }

// Model is the left pane. Filtering happens in the store, so the built-in
// list filter is disabled.
type Model struct {
	list list.Model
}

func New(rows []projection.DayRow, width, height int) Model {
	l := list.New(items(rows), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return Model{list: l}
}

func items(rows []projection.DayRow) []list.Item {
	out := make([]list.Item, len(rows))
	for i, r := range rows {
		out[i] = Item{Row: r}
	}
	return out
}

// SetRows replaces the rows and keeps the cursor on keep when it is still
// listed.
func (m *Model) SetRows(rows []projection.DayRow, keep day.Day) tea.Cmd {
	cmd := m.list.SetItems(items(rows))
	m.list.Select(0)
	for i, r := range rows {
		if r.Day == keep {
			m.list.Select(i)
			break
		}
	}
	return cmd
}

// Selected returns the day under the cursor.
func (m Model) Selected() (day.Day, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Row.Day, true
	}
	return day.Day{}, false
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  " + constants.NoDaysHint
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
