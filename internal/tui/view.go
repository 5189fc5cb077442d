package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case constants.StateCalendar:
		content = docStyle.Render(m.calendarModel.View())
	case constants.StateStats:
		content = docStyle.Render(m.statsModel.View())
	case constants.StateAddHabit, constants.StateEditHabit:
		content = m.viewForm()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewFooter(),
		m.help.View(m),
	)
	return ui
}

func (m Model) viewTabs() string {
	var tabs []string
	active := m.state
	if m.state > constants.StateStats {
		active = m.previousState
	}
	for i, title := range constants.TabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, dangerStyle.Render(m.formError), "", view)
	}
	return docStyle.Render(view)
}

func (m Model) viewFooter() string {
	var parts []string
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	if m.validationWarning != "" {
		parts = append(parts, warningStyle.Render(m.validationWarning))
	}
	if len(parts) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, append([]string{" "}, joinWithGap(parts)...)...)
}

func joinWithGap(parts []string) []string {
	out := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, "   ")
		}
		out = append(out, p)
	}
	return out
}

func (m Model) viewConfirmDelete() string {
	name := m.habitToDeleteID
	if h, err := m.tracker.Get(m.habitToDeleteID); err == nil {
		name = h.Name
	}
	return lipgloss.Place(m.width, max(m.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete \""+name+"\"?"),
			"This will permanently delete this habit and all of its tracking data.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
