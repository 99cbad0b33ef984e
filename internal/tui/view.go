package tui

import (
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/julianstephens/archiver/internal/errors"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.form != nil {
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.form.View(),
		)
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		searchStyle.Render(m.search.View()),
		m.days.View(),
	)
	leftStyle, rightStyle := activePaneStyle, paneStyle
	if m.focus == FocusEntries {
		leftStyle, rightStyle = paneStyle, activePaneStyle
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Render(left),
		rightStyle.Render(m.entries.View()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		panes,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render(apperrors.Format(m.err))
	}
	return statusStyle.Render(m.status)
}
