package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/tui/components/calendar"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
	"github.com/julianstephens/habitual/internal/tui/components/stats"
	"github.com/julianstephens/habitual/internal/validation"
)

type Model struct {
	tracker           *tracker.Tracker
	state             constants.SessionState
	previousState     constants.SessionState
	keys              KeyMap
	help              help.Model
	habitsModel       habits.Model
	calendarModel     calendar.Model
	statsModel        stats.Model
	form              *huh.Form
	habitForm         *HabitFormModel
	editingID         string
	habitToDeleteID   string
	status            string
	formError         string
	validationWarning string
	quitting          bool
	width             int
	height            int
}

func NewModel(t *tracker.Tracker) Model {
	keys := DefaultKeyMap()
	m := Model{
		tracker:       t,
		state:         constants.StateHabits,
		keys:          keys,
		help:          help.New(),
		habitsModel:   habits.New(0, 0, keys.habitsKeys()),
		calendarModel: calendar.New(t.Today(), t.Location(), keys.calendarKeys()),
		statsModel:    stats.New(),
	}
	m.refresh()
	return m
}

// refresh pushes the tracker's current collection into every view.
func (m *Model) refresh() {
	hs := m.tracker.Habits()
	today := m.tracker.Today()
	loc := m.tracker.Location()

	m.habitsModel.SetHabits(hs, today, loc)
	m.calendarModel.SetHabits(hs, today)
	m.statsModel.SetSummary(analytics.Summarize(hs, today, loc))
	m.updateValidationStatus()
}

// updateValidationStatus runs the integrity checks and keeps a one-line
// warning for the footer.
func (m *Model) updateValidationStatus() {
	result := validation.New(m.tracker.Location()).ValidateHabits(m.tracker.Habits())
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateHabits:
		keys = append(keys, m.keys.Toggle, m.keys.Add, m.keys.Edit, m.keys.Delete)
	case constants.StateCalendar:
		keys = append(keys, m.keys.PrevMonth, m.keys.NextMonth, m.keys.PrevHabit, m.keys.NextHabit, m.keys.ToggleDay)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case constants.StateHabits:
		actions = []key.Binding{m.keys.Toggle, m.keys.Add, m.keys.Edit, m.keys.Delete}
	case constants.StateCalendar:
		navigation = append(navigation, m.keys.PrevDay, m.keys.NextDay)
		actions = []key.Binding{m.keys.PrevMonth, m.keys.NextMonth, m.keys.PrevHabit, m.keys.NextHabit, m.keys.ToggleDay}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// State reports which screen is showing.
func (m Model) State() constants.SessionState {
	return m.state
}
