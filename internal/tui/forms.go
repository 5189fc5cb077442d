package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/models"
)

// HabitFormModel backs the add and edit forms. Quotas are kept as text so
// the inputs can be validated as the user types.
type HabitFormModel struct {
	Name         string
	Description  string
	Frequency    models.Frequency
	Days         []int
	TimesPerDay  string
	TimesPerWeek string
}

func newHabitFormModel(in models.HabitInput) *HabitFormModel {
	fm := &HabitFormModel{
		Name:         in.Name,
		Description:  in.Description,
		Frequency:    in.Frequency,
		Days:         append([]int(nil), in.DaysOfWeek...),
		TimesPerDay:  strconv.Itoa(max(in.TimesPerDay, 1)),
		TimesPerWeek: strconv.Itoa(max(in.TimesPerWeek, 1)),
	}
	if fm.Frequency == "" {
		fm.Frequency = models.FrequencyDaily
	}
	return fm
}

// Input converts the form values into a habit input.
func (fm *HabitFormModel) Input() (models.HabitInput, error) {
	in := models.HabitInput{
		Name:        fm.Name,
		Description: fm.Description,
		Frequency:   fm.Frequency,
	}
	switch fm.Frequency {
	case models.FrequencyCustom:
		in.DaysOfWeek = append([]int(nil), fm.Days...)
	case models.FrequencyMultipleDaily:
		n, err := parseQuota(fm.TimesPerDay)
		if err != nil {
			return models.HabitInput{}, err
		}
		in.TimesPerDay = n
	case models.FrequencyNTimesWeekly:
		n, err := parseQuota(fm.TimesPerWeek)
		if err != nil {
			return models.HabitInput{}, err
		}
		in.TimesPerWeek = n
	}
	return in, nil
}

func parseQuota(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("must be a whole number of at least 1")
	}
	return n, nil
}

func validateQuota(s string) error {
	_, err := parseQuota(s)
	return err
}

var frequencyOptions = []huh.Option[models.Frequency]{
	huh.NewOption("Daily", models.FrequencyDaily),
	huh.NewOption("Weekly", models.FrequencyWeekly),
	huh.NewOption("Custom days", models.FrequencyCustom),
	huh.NewOption("Several times a day", models.FrequencyMultipleDaily),
	huh.NewOption("Several times a week", models.FrequencyNTimesWeekly),
}

var weekdayOptions = []huh.Option[int]{
	huh.NewOption("Sunday", 0),
	huh.NewOption("Monday", 1),
	huh.NewOption("Tuesday", 2),
	huh.NewOption("Wednesday", 3),
	huh.NewOption("Thursday", 4),
	huh.NewOption("Friday", 5),
	huh.NewOption("Saturday", 6),
}

func newHabitForm(title string, fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder("Habit name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Description").
				Value(&fm.Description),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(frequencyOptions...).
				Value(&fm.Frequency),
		),
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Days of the week").
				Options(weekdayOptions...).
				Value(&fm.Days),
		).WithHideFunc(func() bool { return fm.Frequency != models.FrequencyCustom }),
		huh.NewGroup(
			huh.NewInput().
				Title("Times per day").
				Value(&fm.TimesPerDay).
				Validate(validateQuota),
		).WithHideFunc(func() bool { return fm.Frequency != models.FrequencyMultipleDaily }),
		huh.NewGroup(
			huh.NewInput().
				Title("Times per week").
				Value(&fm.TimesPerWeek).
				Validate(validateQuota),
		).WithHideFunc(func() bool { return fm.Frequency != models.FrequencyNTimesWeekly }),
	).WithTheme(huh.ThemeDracula())
}
