package cli

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/validation"
)

type HabitAddCmd struct {
	Name         string `arg:"" help:"Habit name."`
	Description  string `short:"D" help:"Optional description."`
	Frequency    string `short:"f" help:"Frequency (daily|weekly|custom|multiple-daily|n-times-weekly)." default:"daily"`
	Days         string `short:"d" help:"Comma-separated weekdays for custom habits (e.g. mon,wed,fri)."`
	TimesPerDay  int    `help:"Completions per day for multiple-daily habits." default:"1"`
	TimesPerWeek int    `help:"Completions per week for n-times-weekly habits." default:"1"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	in := models.HabitInput{
		Name:         c.Name,
		Description:  c.Description,
		Frequency:    models.Frequency(strings.ToLower(c.Frequency)),
		TimesPerDay:  c.TimesPerDay,
		TimesPerWeek: c.TimesPerWeek,
	}
	if c.Days != "" {
		days, err := ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		in.DaysOfWeek = days
	}

	if err := validation.ValidateHabitInput(&in); err != nil {
		return err
	}

	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := t.Create(in)
	if err != nil {
		return err
	}

	ctx.printf("Added habit: %s (ID: %s)\n", h.Name, h.ID)
	return nil
}

type HabitEditCmd struct {
	Ref              string `arg:"" help:"Habit ID, ID prefix or name."`
	Name             string `help:"New name."`
	Description      string `short:"D" help:"New description."`
	ClearDescription bool   `help:"Remove the description."`
	Frequency        string `short:"f" help:"Frequency (daily|weekly|custom|multiple-daily|n-times-weekly)."`
	Days             string `short:"d" help:"Comma-separated weekdays for custom habits."`
	TimesPerDay      int    `help:"Completions per day for multiple-daily habits."`
	TimesPerWeek     int    `help:"Completions per week for n-times-weekly habits."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := t.Find(c.Ref)
	if err != nil {
		return err
	}

	// Flags left unset keep the current values.
	in := h.Input()
	if c.Name != "" {
		in.Name = c.Name
	}
	if c.Description != "" {
		in.Description = c.Description
	}
	if c.ClearDescription {
		in.Description = ""
	}
	if c.Frequency != "" {
		in.Frequency = models.Frequency(strings.ToLower(c.Frequency))
	}
	if c.Days != "" {
		days, err := ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		in.DaysOfWeek = days
	}
	if c.TimesPerDay > 0 {
		in.TimesPerDay = c.TimesPerDay
	}
	if c.TimesPerWeek > 0 {
		in.TimesPerWeek = c.TimesPerWeek
	}

	if err := validation.ValidateHabitInput(&in); err != nil {
		return err
	}

	updated, err := t.Update(h.ID, in)
	if err != nil {
		return err
	}

	ctx.printf("Updated habit: %s (%s)\n", updated.Name, FormatFrequency(updated))
	return nil
}

type HabitDeleteCmd struct {
	Ref string `arg:"" help:"Habit ID, ID prefix or name."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := t.Find(c.Ref)
	if err != nil {
		return err
	}

	if !c.Yes {
		ctx.printf("Delete %q?\n", h.Name)
		ctx.println("This will permanently delete this habit and all of its tracking data.")
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Delete cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := t.Delete(h.ID); err != nil {
		return err
	}

	ctx.printf("Deleted habit: %s\n", h.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habits := t.Habits()
	if len(habits) == 0 {
		ctx.println("No habits yet. Add one with 'habitual habit add NAME'.")
		return nil
	}

	today, loc := t.Today(), t.Location()

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "NAME", "FREQUENCY", "PROGRESS", "STREAK", "STARTED")
	for _, h := range habits {
		tbl.Row(
			statusMark(analytics.CompletedOn(h, today, loc)),
			shortID(h.ID),
			h.Name,
			FormatFrequency(h),
			analytics.Progress(h, today, loc),
			analytics.StreakLabel(analytics.Streak(h, loc)),
			"Started "+h.CreatedAt.In(loc).Format(constants.DisplayDateFormat),
		)
	}

	ctx.println(tbl.Render())
	return nil
}

type HabitShowCmd struct {
	Ref string `arg:"" help:"Habit ID, ID prefix or name."`
}

func (c *HabitShowCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := t.Find(c.Ref)
	if err != nil {
		return err
	}

	today, loc := t.Today(), t.Location()

	ctx.printf("%s\n", h.Name)
	ctx.printf("  ID:           %s\n", h.ID)
	if h.Description != "" {
		ctx.printf("  Description:  %s\n", h.Description)
	}
	ctx.printf("  Frequency:    %s\n", FormatFrequency(h))
	ctx.printf("  Started:      %s\n", h.CreatedAt.In(loc).Format(constants.DisplayDateFormat))
	ctx.printf("  Today:        %s\n", todayStatus(h, today, loc))
	if p := analytics.Progress(h, today, loc); p != "" {
		ctx.printf("  Progress:     %s\n", p)
	}
	ctx.printf("  This week:    %d completion(s)\n", analytics.WeeklyCount(h, today, loc))
	ctx.printf("  Streak:       %s\n", analytics.StreakLabel(analytics.Streak(h, loc)))
	ctx.printf("  Longest run:  %d day(s)\n", analytics.LongestRun(h, loc))
	ctx.printf("  Consistency:  %.0f%%\n", analytics.Consistency(h, today, loc))
	ctx.printf("  Completions:  %d\n", len(h.CompletedDates))
	return nil
}

func todayStatus(h models.Habit, today time.Time, loc *time.Location) string {
	switch {
	case analytics.HasCompletion(h, today, loc):
		return "done"
	case analytics.CompletedOn(h, today, loc), !analytics.IsActive(h, today, loc):
		return "not due"
	default:
		return "pending"
	}
}

func statusMark(done bool) string {
	if done {
		return "✓"
	}
	return "·"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
