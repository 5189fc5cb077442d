package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type EditHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type Item struct {
	Habit     models.Habit
	Completed bool
	Details   []string
}

func (i Item) Title() string {
	if i.Completed {
		return "✓ " + i.Habit.Name
	}
	return "○ " + i.Habit.Name
}

func (i Item) Description() string {
	return strings.Join(i.Details, " · ")
}

func (i Item) FilterValue() string { return i.Habit.Name }

// NewItem computes the list row of h as of today.
func NewItem(h models.Habit, today time.Time, loc *time.Location) Item {
	details := []string{h.Label()}
	if p := analytics.Progress(h, today, loc); p != "" {
		details = append(details, p)
	}
	details = append(details,
		analytics.StreakLabel(analytics.Streak(h, loc)),
		fmt.Sprintf("Started %s", h.CreatedAt.In(loc).Format(constants.DisplayDateFormat)),
	)
	return Item{
		Habit:     h,
		Completed: analytics.CompletedOn(h, today, loc),
		Details:   details,
	}
}

// KeyMap holds the list actions. Bindings are supplied by the caller.
type KeyMap struct {
	Toggle key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int, keys KeyMap) Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{
		list: l,
		keys: keys,
	}
}

// SetHabits rebuilds the rows, keeping the cursor position.
func (m *Model) SetHabits(habits []models.Habit, today time.Time, loc *time.Location) {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = NewItem(h, today, loc)
	}
	m.list.SetItems(items)
}

// Selected returns the habit under the cursor.
func (m Model) Selected() (models.Habit, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Habit{}, false
	}
	return i.Habit, true
}

// Select moves the cursor to the habit with the given ID.
func (m *Model) Select(id string) {
	for i, item := range m.list.Items() {
		if it, ok := item.(Item); ok && it.Habit.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m Model) Items() []Item {
	out := make([]Item, 0, len(m.list.Items()))
	for _, item := range m.list.Items() {
		if it, ok := item.(Item); ok {
			out = append(out, it)
		}
	}
	return out
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: h.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Edit):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditHabitMsg{ID: h.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if h, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: h.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
