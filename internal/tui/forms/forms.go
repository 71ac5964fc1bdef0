// Package forms builds the huh forms used to create goals, habits and
// routines, both from the CLI and inside the TUI.
package forms

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/summit/internal/constants"
	"github.com/julianstephens/summit/internal/models"
	"github.com/julianstephens/summit/internal/validation"
)

// GoalValues backs the new-goal form.
type GoalValues struct {
	Title      string
	Metric     string
	TargetDate string
	Why        string
}

// Input converts the form values into a store input.
func (v GoalValues) Input() models.GoalInput {
	return models.GoalInput{
		Title:      v.Title,
		Metric:     v.Metric,
		TargetDate: v.TargetDate,
		Why:        v.Why,
	}
}

// HabitValues backs the new-habit form. Frequency is free text and is
// resolved with validation.ParseFrequency.
type HabitValues struct {
	GoalID    string
	Name      string
	Frequency string
}

func (v HabitValues) Input() models.HabitInput {
	freq := validation.ParseFrequency(v.Frequency)
	return models.HabitInput{Name: v.Name, FrequencyPerWeek: &freq}
}

// RoutineValues backs the new-routine form; Steps holds one step per line.
type RoutineValues struct {
	GoalID string
	Name   string
	Steps  string
}

func (v RoutineValues) Input() models.RoutineInput {
	return models.RoutineInput{Name: v.Name, Steps: validation.SplitSteps(v.Steps)}
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if validation.IsBlank(s) {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func validTargetDate(s string) error {
	if !validation.ValidTargetDate(s) {
		return errors.New("target date must be YYYY-MM-DD")
	}
	return nil
}

// NewGoalForm creates a form for adding goals
func NewGoalForm(v *GoalValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal").
				Value(&v.Title).
				Validate(notBlank("goal title")),
			huh.NewInput().
				Title("Metric").
				Description("How you will know it is done (optional)").
				Value(&v.Metric),
			huh.NewInput().
				Title("Target date").
				Placeholder(constants.DateFormat).
				Value(&v.TargetDate).
				Validate(validTargetDate),
			huh.NewText().
				Title("Why").
				Description("Optional").
				Value(&v.Why),
		),
	).WithTheme(huh.ThemeDracula())
}

// GoalOptions lists goals for a goal picker, newest first as given.
func GoalOptions(goals []models.Goal) []huh.Option[string] {
	opts := make([]huh.Option[string], len(goals))
	for i, g := range goals {
		opts[i] = huh.NewOption(g.Title, g.ID)
	}
	return opts
}

// NewHabitForm creates a form for adding habits. v.GoalID preselects the
// goal when set.
func NewHabitForm(v *HabitValues, goals []models.Goal) *huh.Form {
	if v.Frequency == "" {
		v.Frequency = strconv.Itoa(constants.DefaultFrequencyPerWeek)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Goal").
				Options(GoalOptions(goals)...).
				Value(&v.GoalID),
			huh.NewInput().
				Title("Habit Name").
				Value(&v.Name).
				Validate(notBlank("habit name")),
			huh.NewInput().
				Title("Times per week").
				Description(fmt.Sprintf("%d-%d", constants.MinFrequencyPerWeek, constants.MaxFrequencyPerWeek)).
				Value(&v.Frequency),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewRoutineForm creates a form for adding routines.
func NewRoutineForm(v *RoutineValues, goals []models.Goal) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Goal").
				Options(GoalOptions(goals)...).
				Value(&v.GoalID),
			huh.NewInput().
				Title("Routine Name").
				Value(&v.Name).
				Validate(notBlank("routine name")),
			huh.NewText().
				Title("Steps").
				Description("One step per line").
				Value(&v.Steps),
		),
	).WithTheme(huh.ThemeDracula())
}

// ConfirmValues backs a yes/no confirmation.
type ConfirmValues struct {
	Confirmed bool
}

// NewConfirmForm asks a single yes/no question.
func NewConfirmForm(v *ConfirmValues, question string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&v.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
