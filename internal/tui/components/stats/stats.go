package stats

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/models"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(30)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type Model struct {
	summary analytics.Summary
	width   int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSummary(s analytics.Summary) {
	m.summary = s
}

func (m Model) Summary() analytics.Summary {
	return m.summary
}

func (m *Model) SetSize(width, _ int) {
	m.width = width
}

func card(title, value, detail string) string {
	body := titleStyle.Render(title) + "\n" + valueStyle.Render(value)
	if detail != "" {
		body += "\n" + mutedStyle.Render(detail)
	}
	return cardStyle.Render(body)
}

func (m Model) View() string {
	s := m.summary
	if s.TotalHabits == 0 {
		return "\n  No habits to summarize yet."
	}

	today := card("Today's Progress",
		fmt.Sprintf("%d/%d", s.CompletedToday, s.TotalHabits),
		fmt.Sprintf("%d%% complete", s.CompletionRate))

	streak := card("Longest Streak",
		analytics.StreakLabel(s.LongestStreak),
		s.LongestStreakHabit)

	consistent := card("Most Consistent",
		fmt.Sprintf("%.0f%%", s.MostConsistency),
		s.MostConsistentHabit)

	var overview strings.Builder
	for i, f := range models.Frequencies {
		if i > 0 {
			overview.WriteString("\n")
		}
		fmt.Fprintf(&overview, "%-16s %d", f, s.FrequencyCounts[f])
	}
	fmt.Fprintf(&overview, "\n%-16s %d", "completions", s.TotalCompletions)
	breakdown := cardStyle.Render(titleStyle.Render("Habit Overview") + "\n" + overview.String())

	top := lipgloss.JoinHorizontal(lipgloss.Top, today, streak)
	if m.width > 0 && m.width < 2*lipgloss.Width(today) {
		top = lipgloss.JoinVertical(lipgloss.Left, today, streak)
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, lipgloss.JoinHorizontal(lipgloss.Top, consistent, breakdown))
}
