package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// ToggleDayMsg asks for the habit to be toggled on Day.
type ToggleDayMsg struct {
	ID  string
	Day time.Time
}

// KeyMap holds the calendar navigation. Bindings are supplied by the caller.
type KeyMap struct {
	PrevMonth key.Binding
	NextMonth key.Binding
	PrevHabit key.Binding
	NextHabit key.Binding
	PrevDay   key.Binding
	NextDay   key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	Toggle    key.Binding
}

var (
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	activeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	inactiveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model shows one habit's month grid with a day cursor.
type Model struct {
	habits []models.Habit
	index  int
	cursor time.Time
	today  time.Time
	loc    *time.Location
	keys   KeyMap
	width  int
	height int
}

func New(today time.Time, loc *time.Location, keys KeyMap) Model {
	return Model{
		cursor: utils.StartOfDay(today, loc),
		today:  utils.StartOfDay(today, loc),
		loc:    loc,
		keys:   keys,
	}
}

// SetHabits replaces the collection, keeping the selected habit when it
// still exists.
func (m *Model) SetHabits(habits []models.Habit, today time.Time) {
	var selected string
	if h, ok := m.Selected(); ok {
		selected = h.ID
	}
	m.habits = habits
	m.today = utils.StartOfDay(today, m.loc)
	m.index = 0
	for i, h := range habits {
		if h.ID == selected {
			m.index = i
			break
		}
	}
}

func (m Model) Selected() (models.Habit, bool) {
	if m.index < 0 || m.index >= len(m.habits) {
		return models.Habit{}, false
	}
	return m.habits[m.index], true
}

// Cursor returns the highlighted day.
func (m Model) Cursor() time.Time {
	return m.cursor
}

// Select shows the habit with the given ID.
func (m *Model) Select(id string) {
	for i, h := range m.habits {
		if h.ID == id {
			m.index = i
			return
		}
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.PrevMonth):
		m.cursor = m.cursor.AddDate(0, -1, 0)
	case key.Matches(keyMsg, m.keys.NextMonth):
		m.cursor = m.cursor.AddDate(0, 1, 0)
	case key.Matches(keyMsg, m.keys.PrevDay):
		m.cursor = m.cursor.AddDate(0, 0, -1)
	case key.Matches(keyMsg, m.keys.NextDay):
		m.cursor = m.cursor.AddDate(0, 0, 1)
	case key.Matches(keyMsg, m.keys.PrevWeek):
		m.cursor = m.cursor.AddDate(0, 0, -7)
	case key.Matches(keyMsg, m.keys.NextWeek):
		m.cursor = m.cursor.AddDate(0, 0, 7)
	case key.Matches(keyMsg, m.keys.PrevHabit):
		if len(m.habits) > 0 {
			m.index = (m.index - 1 + len(m.habits)) % len(m.habits)
		}
	case key.Matches(keyMsg, m.keys.NextHabit):
		if len(m.habits) > 0 {
			m.index = (m.index + 1) % len(m.habits)
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		h, ok := m.Selected()
		if !ok {
			return m, nil
		}
		day := m.cursor
		return m, func() tea.Msg { return ToggleDayMsg{ID: h.ID, Day: day} }
	}
	m.cursor = utils.StartOfDay(m.cursor, m.loc)
	return m, nil
}

func (m Model) View() string {
	h, ok := m.Selected()
	if !ok {
		return "\n  No habits yet.\n  Add one from the Habits tab."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", headerStyle.Render(h.Name), mutedStyle.Render(fmt.Sprintf("(%d/%d)", m.index+1, len(m.habits))))
	fmt.Fprintf(&b, "%s\n\n", m.cursor.Format("January 2006"))
	b.WriteString(m.grid(h))
	b.WriteString("\n")
	b.WriteString(m.dueList())
	return b.String()
}

func (m Model) grid(h models.Habit) string {
	var b strings.Builder
	b.WriteString(mutedStyle.Render(" Su  Mo  Tu  We  Th  Fr  Sa"))
	b.WriteString("\n")

	days := analytics.Month(h, m.cursor, m.loc)
	if len(days) == 0 {
		return b.String()
	}
	lead := int(days[0].Date.Weekday())
	b.WriteString(strings.Repeat("    ", lead))

	for i, d := range days {
		cell := fmt.Sprintf("%3d", d.Date.Day())
		mark := " "
		style := inactiveStyle
		switch {
		case d.Completed:
			mark = "✓"
			style = completedStyle
		case d.Active:
			mark = "·"
			style = activeStyle
		}
		cell = style.Render(cell + mark)
		if utils.SameDay(d.Date, m.cursor, m.loc) {
			cell = cursorStyle.Render(cell)
		}
		b.WriteString(cell)

		if (lead+i+1)%7 == 0 && i != len(days)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

// dueList shows the habits expected on the cursor day.
func (m Model) dueList() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nDue on %s:\n", m.cursor.Format(constants.DateFormat))
	due := analytics.DueOn(m.habits, m.cursor, m.loc)
	if len(due) == 0 {
		b.WriteString(mutedStyle.Render("  nothing scheduled"))
		b.WriteString("\n")
		return b.String()
	}
	for _, h := range due {
		mark := "○"
		if analytics.CompletedOn(h, m.cursor, m.loc) {
			mark = completedStyle.Render("✓")
		}
		fmt.Fprintf(&b, "  %s %s\n", mark, h.Name)
	}
	return b.String()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
