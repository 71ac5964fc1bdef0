package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/summit/internal/metrics"
	"github.com/julianstephens/summit/internal/models"
	"github.com/julianstephens/summit/internal/tui/components/habits"
	"github.com/julianstephens/summit/internal/tui/forms"
	"github.com/julianstephens/summit/internal/utils"
	"github.com/julianstephens/summit/internal/validation"
)

type HabitAddCmd struct {
	Name      string `arg:"" optional:"" help:"Habit name. Opens a form when omitted."`
	Goal      string `short:"g" help:"Goal id, id prefix or title. Defaults to the focused goal."`
	Frequency string `short:"f" help:"Times per week (1-7, default 3). Out-of-range values are clamped."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	in := models.HabitInput{Name: c.Name}
	if strings.TrimSpace(c.Frequency) != "" {
		freq := validation.ParseFrequency(c.Frequency)
		in.FrequencyPerWeek = &freq
	}

	var goalID string
	if validation.IsBlank(in.Name) {
		preselect, err := ctx.PreselectGoal(c.Goal)
		if err != nil {
			return err
		}
		values := forms.HabitValues{GoalID: preselect, Frequency: c.Frequency}
		if err := forms.NewHabitForm(&values, ctx.Store.Goals()).Run(); err != nil {
			return fmt.Errorf("habit form cancelled: %w", err)
		}
		in = values.Input()
		goalID = values.GoalID
	} else {
		goal, err := ctx.GoalOrFocused(c.Goal)
		if err != nil {
			return err
		}
		goalID = goal.ID
	}

	habit, err := ctx.Store.AddHabit(goalID, in)
	if err != nil {
		return err
	}
	ctx.Printf("Added habit: %s (%dx/week, ID: %s)\n", habit.Name, habit.FrequencyPerWeek, habit.ID)
	return nil
}

// habitScope picks the habits a listing covers: one goal, every goal, or
// the focused goal falling back to every goal.
func habitScope(ctx *Context, goalRef string, all bool) ([]models.Habit, string, error) {
	switch {
	case all:
		return ctx.Store.Habits(""), "all goals", nil
	case strings.TrimSpace(goalRef) != "":
		g, err := ctx.ResolveGoal(goalRef)
		if err != nil {
			return nil, "", err
		}
		return ctx.Store.Habits(g.ID), g.Title, nil
	}
	if g, ok := ctx.Store.FocusedGoal(); ok {
		return ctx.Store.Habits(g.ID), g.Title, nil
	}
	return ctx.Store.Habits(""), "all goals", nil
}

type HabitListCmd struct {
	Goal string `short:"g" help:"Only habits of this goal."`
	All  bool   `short:"a" help:"Habits of every goal, ignoring focus."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	list, scope, err := habitScope(ctx, c.Goal, c.All)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.Println("No habits found")
		return nil
	}

	week := utils.WeekDays(ctx.Now())
	today := ctx.Today()
	ctx.Printf("Habits (%s):\n", scope)
	for _, h := range list {
		sum := metrics.HabitWeek(h, week)
		mark := " "
		if h.DoneOn(today) {
			mark = "✓"
		}
		ctx.Printf("  %s %s  %s - %d/%d this week\n", mark, ShortID(h.ID), h.Name, sum.Done, sum.Target)
	}
	return nil
}

type HabitMarkCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix or name."`
	Day   string `short:"d" help:"Day to toggle (YYYY-MM-DD). Defaults to today."`
}

func (c *HabitMarkCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	day := strings.TrimSpace(c.Day)
	if day == "" {
		day = ctx.Today()
	}
	done, err := ctx.Store.ToggleHabitCompletion(habit.ID, day)
	if err != nil {
		return err
	}
	if done {
		ctx.Printf("✓ %s done on %s\n", habit.Name, day)
	} else {
		ctx.Printf("%s unmarked on %s\n", habit.Name, day)
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix or name."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := confirm(fmt.Sprintf("Delete habit %q and its history?", habit.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}
	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type HabitLogCmd struct {
	Habit string `arg:"" optional:"" help:"Habit id, id prefix or name. Defaults to every habit in scope."`
	Days  int    `short:"n" help:"Number of days to show." default:"14"`
}

func (c *HabitLogCmd) Validate() error {
	if c.Days < 1 || c.Days > 365 {
		return fmt.Errorf("days must be between 1 and 365")
	}
	return nil
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	var list []models.Habit
	if strings.TrimSpace(c.Habit) != "" {
		h, err := ctx.ResolveHabit(c.Habit)
		if err != nil {
			return err
		}
		list = []models.Habit{h}
	} else {
		var err error
		if list, _, err = habitScope(ctx, "", false); err != nil {
			return err
		}
	}
	if len(list) == 0 {
		ctx.Println("No habits found")
		return nil
	}

	days := utils.DaysBack(ctx.Now(), c.Days)
	slices.Reverse(days)
	ctx.Printf("%s .. %s\n", days[0], days[len(days)-1])
	for _, h := range list {
		ctx.Printf("  %-20s %s\n", h.Name, habits.History(h, days))
	}
	return nil
}
