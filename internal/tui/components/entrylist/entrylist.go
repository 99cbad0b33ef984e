package entrylist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/archiver/internal/constants"
	"github.com/julianstephens/archiver/internal/projection"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(7)

	contentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	editedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model is the right pane: the entries of the selected day.
type Model struct {
	viewport viewport.Model
	header   string
	rows     []projection.EntryRow
	cursor   int
	loaded   bool
	focused  bool
}

func New(width, height int) Model {
	m := Model{
		viewport: viewport.New(width, height),
		header:   constants.EntriesHeader,
	}
	m.render()
	return m
}

// SetEntries shows rows under header. A nil rows slice clears the pane.
func (m *Model) SetEntries(header string, rows []projection.EntryRow) {
	m.header = header
	m.rows = rows
	m.loaded = rows != nil
	if m.cursor >= len(rows) {
		m.cursor = max(len(rows)-1, 0)
	}
	m.render()
}

// Clear resets the pane to its unselected state.
func (m *Model) Clear() {
	m.cursor = 0
	m.SetEntries(constants.EntriesHeader, nil)
}

func (m *Model) Focus(focused bool) {
	m.focused = focused
	m.render()
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (projection.EntryRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return projection.EntryRow{}, false
	}
	return m.rows[m.cursor], true
}

func (m Model) Header() string {
	return m.header
}

func (m Model) Rows() []projection.EntryRow {
	return m.rows
}

func (m *Model) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		m.render()
	}
}

func (m *Model) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
		m.render()
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return headerStyle.Render(m.header) + "\n" + m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	// header line plus margin
	m.viewport.Height = max(height-2, 1)
	m.render()
}

func (m *Model) render() {
	if !m.loaded {
		m.viewport.SetContent(constants.NoDaySelectedHint)
		return
	}
	if len(m.rows) == 0 {
		m.viewport.SetContent(constants.NoEntriesHint)
		return
	}

	var b strings.Builder
	for i, r := range m.rows {
		line := fmt.Sprintf("%s %s", timeStyle.Render(r.Time), contentStyle.Render(r.Content))
		if r.Edited {
			line += " " + editedStyle.Render(constants.EditedMarker)
		}
		if m.focused && i == m.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}
