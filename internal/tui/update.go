package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tui/components/calendar"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
	"github.com/julianstephens/habitual/internal/validation"
)

const tabCount = 3

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.habitsModel.SetSize(msg.Width-h, msg.Height-v-4)
		m.calendarModel.SetSize(msg.Width-h, msg.Height-v-4)
		m.statsModel.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil
	}

	switch m.state {
	case constants.StateAddHabit, constants.StateEditHabit:
		return m.updateForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		return m.openForm(constants.StateAddHabit, "", models.HabitInput{Frequency: models.FrequencyDaily})

	case habits.EditHabitMsg:
		h, err := m.tracker.Get(msg.ID)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		return m.openForm(constants.StateEditHabit, h.ID, h.Input())

	case habits.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil

	case habits.ToggleHabitMsg:
		m.toggle(msg.ID, m.tracker.Today())
		return m, nil

	case calendar.ToggleDayMsg:
		m.toggle(msg.ID, msg.Day)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			m.status = ""
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			m.status = ""
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case constants.StateCalendar:
		m.calendarModel, cmd = m.calendarModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggle(id string, day time.Time) {
	h, err := m.tracker.ToggleDay(id, day)
	if err != nil {
		m.setError(err)
		return
	}
	m.refresh()
	m.status = h.Name + " updated"
}

func (m Model) openForm(state constants.SessionState, id string, in models.HabitInput) (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.state = state
	m.editingID = id
	m.formError = ""
	m.habitForm = newHabitFormModel(in)

	title := "New habit"
	if state == constants.StateEditHabit {
		title = "Edit habit"
	}
	m.form = newHabitForm(title, m.habitForm)
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.submitForm(); err != nil {
			m.formError = err.Error()
			m.form = newHabitForm("Fix and resubmit", m.habitForm)
			return m, m.form.Init()
		}
		m.closeForm()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

// submitForm creates or updates the habit from the form values.
func (m *Model) submitForm() error {
	in, err := m.habitForm.Input()
	if err != nil {
		return err
	}
	if err := validation.ValidateHabitInput(&in); err != nil {
		return err
	}

	if m.state == constants.StateEditHabit {
		h, err := m.tracker.Update(m.editingID, in)
		if err != nil {
			return err
		}
		m.refresh()
		m.habitsModel.Select(h.ID)
		m.status = h.Name + " saved"
		return nil
	}

	h, err := m.tracker.Create(in)
	if err != nil {
		return err
	}
	m.refresh()
	m.habitsModel.Select(h.ID)
	m.calendarModel.Select(h.ID)
	m.status = h.Name + " added"
	return nil
}

func (m *Model) closeForm() {
	m.form = nil
	m.habitForm = nil
	m.editingID = ""
	m.formError = ""
	m.state = m.previousState
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		if m.habitToDeleteID != "" {
			if err := m.tracker.Delete(m.habitToDeleteID); err != nil {
				m.setError(err)
			} else {
				m.refresh()
				m.status = "Habit deleted"
			}
		}
		m.habitToDeleteID = ""
		m.state = m.previousState
	case "n", "N", "esc", "q":
		m.habitToDeleteID = ""
		m.state = m.previousState
	}
	return m, nil
}

func (m *Model) setError(err error) {
	logger.Warn("TUI action failed", "error", err)
	m.status = "Error: " + err.Error()
}
