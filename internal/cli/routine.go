package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/summit/internal/models"
	"github.com/julianstephens/summit/internal/tui/forms"
	"github.com/julianstephens/summit/internal/validation"
)

type RoutineAddCmd struct {
	Name  string   `arg:"" optional:"" help:"Routine name. Opens a form when omitted."`
	Goal  string   `short:"g" help:"Goal id, id prefix or title. Defaults to the focused goal."`
	Steps []string `name:"step" short:"s" help:"A checklist step, in order. Repeat for more steps." sep:"none"`
}

func (c *RoutineAddCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	in := models.RoutineInput{Name: c.Name, Steps: c.Steps}

	var goalID string
	if validation.IsBlank(in.Name) {
		preselect, err := ctx.PreselectGoal(c.Goal)
		if err != nil {
			return err
		}
		values := forms.RoutineValues{GoalID: preselect, Steps: strings.Join(c.Steps, "\n")}
		if err := forms.NewRoutineForm(&values, ctx.Store.Goals()).Run(); err != nil {
			return fmt.Errorf("routine form cancelled: %w", err)
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

	routine, err := ctx.Store.AddRoutine(goalID, in)
	if err != nil {
		return err
	}
	ctx.Printf("Added routine: %s (%d steps, ID: %s)\n", routine.Name, len(routine.Steps), routine.ID)
	return nil
}

type RoutineListCmd struct {
	Goal string `short:"g" help:"Only routines of this goal."`
	All  bool   `short:"a" help:"Routines of every goal, ignoring focus."`
}

func (c *RoutineListCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	var list []models.Routine
	switch {
	case c.All:
		list = ctx.Store.Routines("")
	case strings.TrimSpace(c.Goal) != "":
		g, err := ctx.ResolveGoal(c.Goal)
		if err != nil {
			return err
		}
		list = ctx.Store.Routines(g.ID)
	default:
		list = ctx.Store.ScopedRoutines()
	}
	if len(list) == 0 {
		ctx.Println("No routines found")
		return nil
	}

	ctx.Println("Routines:")
	for _, r := range list {
		last := "never"
		if r.LastCompletedAt != nil {
			last = r.LastCompletedAt.In(ctx.Location).Format("2006-01-02 15:04")
		}
		ctx.Printf("  %s  %s (last done: %s)\n", ShortID(r.ID), r.Name, last)
		for i, step := range r.Steps {
			ctx.Printf("      %d. %s\n", i+1, step)
		}
	}
	return nil
}

type RoutineDoneCmd struct {
	Routine string `arg:"" help:"Routine id, id prefix or name."`
}

func (c *RoutineDoneCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	routine, err := ctx.ResolveRoutine(c.Routine)
	if err != nil {
		return err
	}
	done, err := ctx.Store.CompleteRoutine(routine.ID)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Completed routine: %s at %s\n", done.Name, done.LastCompletedAt.In(ctx.Location).Format("15:04"))
	return nil
}

type RoutineDeleteCmd struct {
	Routine string `arg:"" help:"Routine id, id prefix or name."`
	Yes     bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *RoutineDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	routine, err := ctx.ResolveRoutine(c.Routine)
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := confirm(fmt.Sprintf("Delete routine %q?", routine.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}
	if err := ctx.Store.DeleteRoutine(routine.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted routine: %s\n", routine.Name)
	return nil
}
