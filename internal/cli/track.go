package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

type ToggleCmd struct {
	Ref  string `arg:"" help:"Habit ID, ID prefix or name."`
	Date string `help:"Day to toggle (YYYY-MM-DD). Defaults to today."`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := t.Find(c.Ref)
	if err != nil {
		return err
	}

	day := t.Today()
	if c.Date != "" {
		if day, err = utils.ParseDateInLocation(c.Date, t.Location()); err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", c.Date)
		}
	}

	toggled, err := t.ToggleDay(h.ID, day)
	if err != nil {
		return err
	}

	loc := t.Location()
	state := "not completed"
	if analytics.HasCompletion(toggled, day, loc) {
		state = "completed"
	}
	ctx.printf("%s: %s on %s", toggled.Name, state, day.Format(constants.DateFormat))
	if p := analytics.Progress(toggled, day, loc); p != "" {
		ctx.printf(" (%s)", p)
	}
	ctx.println()
	return nil
}

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	today, loc := t.Today(), t.Location()
	habits := t.Habits()

	ctx.printf("Today: %s\n\n", today.Format("Monday, "+constants.DisplayDateFormat))

	due := analytics.DueOn(habits, today, loc)
	if len(due) == 0 {
		ctx.println("Nothing due today.")
	}
	for _, h := range due {
		line := fmt.Sprintf("  %s %s", statusMark(analytics.HasCompletion(h, today, loc)), h.Name)
		if p := analytics.Progress(h, today, loc); p != "" {
			line += " (" + p + ")"
		}
		ctx.println(line)
	}

	s := analytics.Summarize(habits, today, loc)
	ctx.printf("\n%d of %d habits completed today (%d%%)\n", s.CompletedToday, s.TotalHabits, s.CompletionRate)
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	s := analytics.Summarize(t.Habits(), t.Today(), t.Location())

	ctx.println("Today's Progress")
	ctx.printf("  %d/%d completed (%d%%)\n\n", s.CompletedToday, s.TotalHabits, s.CompletionRate)

	ctx.println("Longest Streak")
	if s.LongestStreakHabit == "" {
		ctx.println("  No streaks yet")
	} else {
		ctx.printf("  %d days (%s)\n", s.LongestStreak, s.LongestStreakHabit)
	}
	ctx.println()

	ctx.println("Most Consistent")
	if s.MostConsistentHabit == "" {
		ctx.println("  No habits yet")
	} else {
		ctx.printf("  %s (%.0f%%)\n", s.MostConsistentHabit, s.MostConsistency)
	}
	ctx.println()

	ctx.println("Habit Overview")
	for _, f := range models.Frequencies {
		ctx.printf("  %-16s %d\n", f, s.FrequencyCounts[f])
	}
	ctx.printf("  %-16s %d\n", "total completions", s.TotalCompletions)
	return nil
}

type CalendarCmd struct {
	Ref   string `arg:"" help:"Habit ID, ID prefix or name."`
	Month string `help:"Month to show (YYYY-MM). Defaults to the current month."`
	Date  string `help:"Day whose due habits are listed (YYYY-MM-DD). Defaults to today."`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := t.Find(c.Ref)
	if err != nil {
		return err
	}

	loc := t.Location()
	month := t.Today()
	if c.Month != "" {
		if month, err = utils.ParseMonthInLocation(c.Month, loc); err != nil {
			return fmt.Errorf("invalid month %q: expected YYYY-MM", c.Month)
		}
	}
	day := t.Today()
	if c.Date != "" {
		if day, err = utils.ParseDateInLocation(c.Date, loc); err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", c.Date)
		}
	}

	ctx.printf("%s  %s\n\n", h.Name, month.Format("January 2006"))
	ctx.print(RenderMonth(analytics.Month(h, month, loc)))
	ctx.println("\n✓ completed  · due  blank: not due")

	ctx.printf("\nHabits for %s:\n", day.Format(constants.DisplayDateFormat))
	due := analytics.DueOn(t.Habits(), day, loc)
	if len(due) == 0 {
		ctx.println("  none")
	}
	for _, d := range due {
		ctx.printf("  %s %s\n", statusMark(analytics.HasCompletion(d, day, loc)), d.Name)
	}
	return nil
}

// RenderMonth lays out calendar cells as a Sunday-first grid.
func RenderMonth(cells []analytics.CalendarDay) string {
	var b strings.Builder
	b.WriteString(" Su  Mo  Tu  We  Th  Fr  Sa\n")
	if len(cells) == 0 {
		return b.String()
	}

	lead := int(cells[0].Date.Weekday())
	b.WriteString(strings.Repeat("    ", lead))
	for i, cell := range cells {
		fmt.Fprintf(&b, "%3d%s", cell.Date.Day(), cellMark(cell))
		if (lead+i+1)%7 == 0 {
			b.WriteString("\n")
		}
	}
	if (lead+len(cells))%7 != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func cellMark(cell analytics.CalendarDay) string {
	switch {
	case cell.Completed:
		return "✓"
	case cell.Active:
		return "·"
	default:
		return " "
	}
}

