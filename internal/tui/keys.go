package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/julianstephens/habitual/internal/tui/components/calendar"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
)

type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Help     key.Binding
	Up       key.Binding
	Down     key.Binding

	// Habits tab
	Toggle key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding

	// Calendar tab
	PrevMonth key.Binding
	NextMonth key.Binding
	PrevHabit key.Binding
	NextHabit key.Binding
	PrevDay   key.Binding
	NextDay   key.Binding
	ToggleDay key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Quit, k.Help},
		{k.Up, k.Down},
		{k.Toggle, k.Add, k.Edit, k.Delete},
		{k.PrevMonth, k.NextMonth, k.PrevHabit, k.NextHabit, k.PrevDay, k.NextDay, k.ToggleDay},
	}
}

// habitsKeys returns the bindings handed to the habits list.
func (k KeyMap) habitsKeys() habits.KeyMap {
	return habits.KeyMap{
		Toggle: k.Toggle,
		Add:    k.Add,
		Edit:   k.Edit,
		Delete: k.Delete,
	}
}

// calendarKeys returns the bindings handed to the calendar view.
func (k KeyMap) calendarKeys() calendar.KeyMap {
	return calendar.KeyMap{
		PrevMonth: k.PrevMonth,
		NextMonth: k.NextMonth,
		PrevHabit: k.PrevHabit,
		NextHabit: k.NextHabit,
		PrevDay:   k.PrevDay,
		NextDay:   k.NextDay,
		PrevWeek:  k.Up,
		NextWeek:  k.Down,
		Toggle:    k.ToggleDay,
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle today"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add habit"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit habit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete habit"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next month"),
		),
		PrevHabit: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev habit"),
		),
		NextHabit: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next habit"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "next day"),
		),
		ToggleDay: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle day"),
		),
	}
}
