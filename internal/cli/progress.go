package cli

import (
	"strings"

	"github.com/julianstephens/summit/internal/metrics"
	"github.com/julianstephens/summit/internal/tui/components/board"
	"github.com/julianstephens/summit/internal/tui/components/habits"
	"github.com/julianstephens/summit/internal/utils"
)

// ProgressCmd covers every habit regardless of focus unless --goal narrows it.
type ProgressCmd struct {
	Goal string `short:"g" help:"Only count habits of this goal."`
}

func (c *ProgressCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	list, scope, err := habitScope(ctx, c.Goal, strings.TrimSpace(c.Goal) == "")
	if err != nil {
		return err
	}

	p := metrics.Board(ctx.Store.Goals(), list, ctx.Now(), ctx.Config.StreakWindowDays)
	ctx.Println(board.Render(p, scope))
	return nil
}

type WeekCmd struct {
	Goal string `short:"g" help:"Only habits of this goal."`
	All  bool   `short:"a" help:"Habits of every goal, ignoring focus."`
}

func (c *WeekCmd) Run(ctx *Context) error {
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
	adherence := metrics.WeeklyAdherence(list, week)
	ctx.Printf("Week of %s (%s)\n\n", week[0], scope)
	ctx.Println(habits.Grid(list, week, ctx.Today(), nil))
	ctx.Printf("\nAdherence: %d%% (%d/%d)\n", adherence.Percent, adherence.Completed, adherence.Slots)
	return nil
}
