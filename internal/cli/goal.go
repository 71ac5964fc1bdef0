package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/summit/internal/models"
	"github.com/julianstephens/summit/internal/tui/forms"
	"github.com/julianstephens/summit/internal/validation"
)

type GoalAddCmd struct {
	Title  string `arg:"" optional:"" help:"Goal title. Opens a form when omitted."`
	Metric string `short:"m" help:"How you will know the goal is done."`
	Target string `short:"t" help:"Target date (YYYY-MM-DD)."`
	Why    string `short:"w" help:"Why this goal matters."`
}

func (c *GoalAddCmd) Validate() error {
	if !validation.ValidTargetDate(strings.TrimSpace(c.Target)) {
		return fmt.Errorf("target date must be YYYY-MM-DD, got %q", c.Target)
	}
	return nil
}

func (c *GoalAddCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	values := forms.GoalValues{Title: c.Title, Metric: c.Metric, TargetDate: strings.TrimSpace(c.Target), Why: c.Why}
	if validation.IsBlank(values.Title) {
		if err := forms.NewGoalForm(&values).Run(); err != nil {
			return fmt.Errorf("goal form cancelled: %w", err)
		}
	}

	goal, err := ctx.Store.AddGoal(values.Input())
	if err != nil {
		return err
	}
	ctx.Printf("Added goal: %s (ID: %s)\n", goal.Title, goal.ID)
	ctx.Println("Goal is now focused.")
	return nil
}

type GoalListCmd struct {
	Active bool `help:"Hide completed goals."`
}

func (c *GoalListCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	goals := ctx.Store.Goals()
	if len(goals) == 0 {
		ctx.Println("No goals found")
		return nil
	}

	focused := ctx.Store.FocusedGoalID()
	ctx.Println("Goals:")
	for _, g := range goals {
		if c.Active && g.Completed {
			continue
		}
		ctx.Println(formatGoalLine(g, g.ID == focused))
		if g.Metric != "" {
			ctx.Printf("      Metric: %s\n", g.Metric)
		}
		if g.Why != "" {
			ctx.Printf("      Why: %s\n", g.Why)
		}
	}
	return nil
}

func formatGoalLine(g models.Goal, focused bool) string {
	status := "active"
	if g.Completed {
		status = "done"
	}
	marker := " "
	if focused {
		marker = "*"
	}
	line := fmt.Sprintf("  %s [%s] %s  %s", marker, status, ShortID(g.ID), g.Title)
	if g.TargetDate != "" {
		line += fmt.Sprintf(" (by %s)", g.TargetDate)
	}
	return line
}

type GoalEditCmd struct {
	Goal   string  `arg:"" help:"Goal id, id prefix or title."`
	Title  *string `help:"New title."`
	Metric *string `short:"m" help:"New metric. Pass an empty string to clear."`
	Target *string `short:"t" help:"New target date (YYYY-MM-DD). Pass an empty string to clear."`
	Why    *string `short:"w" help:"New motivation. Pass an empty string to clear."`
}

func (c *GoalEditCmd) Validate() error {
	if c.Target != nil && !validation.ValidTargetDate(strings.TrimSpace(*c.Target)) {
		return fmt.Errorf("target date must be YYYY-MM-DD, got %q", *c.Target)
	}
	return nil
}

func (c *GoalEditCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	goal, err := ctx.ResolveGoal(c.Goal)
	if err != nil {
		return err
	}

	patch := models.GoalPatch{
		Title:      trimmed(c.Title),
		Metric:     trimmed(c.Metric),
		TargetDate: trimmed(c.Target),
		Why:        trimmed(c.Why),
	}
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to update: pass at least one of --title, --metric, --target, --why")
	}

	updated, err := ctx.Store.UpdateGoal(goal.ID, patch)
	if err != nil {
		return err
	}
	ctx.Printf("Updated goal: %s\n", updated.Title)
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

type GoalDoneCmd struct {
	Goal string `arg:"" help:"Goal id, id prefix or title."`
}

func (c *GoalDoneCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	goal, err := ctx.ResolveGoal(c.Goal)
	if err != nil {
		return err
	}

	updated, err := ctx.Store.SetGoalCompleted(goal.ID, !goal.Completed)
	if err != nil {
		return err
	}
	if updated.Completed {
		ctx.Printf("✓ Marked goal done: %s\n", updated.Title)
	} else {
		ctx.Printf("Reopened goal: %s\n", updated.Title)
	}
	return nil
}

type GoalDeleteCmd struct {
	Goal string `arg:"" help:"Goal id, id prefix or title."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *GoalDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	goal, err := ctx.ResolveGoal(c.Goal)
	if err != nil {
		return err
	}

	habits := len(ctx.Store.Habits(goal.ID))
	routines := len(ctx.Store.Routines(goal.ID))
	if !c.Yes {
		question := fmt.Sprintf("Delete %q with %d habit(s) and %d routine(s)?", goal.Title, habits, routines)
		ok, err := confirm(question)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Store.DeleteGoal(goal.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted goal: %s (%d habits, %d routines removed)\n", goal.Title, habits, routines)
	return nil
}

type GoalFocusCmd struct {
	Goal  string `arg:"" optional:"" help:"Goal id, id prefix or title. Shows the focused goal when omitted."`
	Clear bool   `help:"Clear the focused goal."`
}

func (c *GoalFocusCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	switch {
	case c.Clear:
		ctx.Store.SetFocusedGoal("")
		ctx.Println("Focus cleared.")
	case strings.TrimSpace(c.Goal) == "":
		if g, ok := ctx.Store.FocusedGoal(); ok {
			ctx.Printf("Focused goal: %s (ID: %s)\n", g.Title, g.ID)
		} else {
			ctx.Println("No goal is focused.")
		}
	default:
		goal, err := ctx.ResolveGoal(c.Goal)
		if err != nil {
			return err
		}
		ctx.Store.SetFocusedGoal(goal.ID)
		ctx.Printf("Focused goal: %s\n", goal.Title)
	}
	return nil
}

// confirm asks a yes/no question on the terminal.
func confirm(question string) (bool, error) {
	var v forms.ConfirmValues
	if err := forms.NewConfirmForm(&v, question).Run(); err != nil {
		return false, err
	}
	return v.Confirmed, nil
}
