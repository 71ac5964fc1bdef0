package cli

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/julianstephens/summit/internal/errors"
	"github.com/julianstephens/summit/internal/models"
)

// ErrNoGoal is returned when a command needs a goal, none was named and
// nothing is focused.
var ErrNoGoal = errors.New("no goal given and no goal is focused (use --goal or 'summit goal focus')")

// minPrefix is the shortest id prefix accepted as a reference.
const minPrefix = 4

// resolve finds the single item matching ref: an exact id, then a
// case-insensitive name, then a unique id prefix.
func resolve[T any](ref string, items []T, id, name func(T) string, sentinel error) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, apperrors.NotFound(sentinel, ref)
	}

	for _, it := range items {
		if id(it) == ref {
			return it, nil
		}
	}

	var byName, byPrefix []T
	for _, it := range items {
		if strings.EqualFold(name(it), ref) {
			byName = append(byName, it)
		}
		if len(ref) >= minPrefix && strings.HasPrefix(id(it), ref) {
			byPrefix = append(byPrefix, it)
		}
	}
	for _, matches := range [][]T{byName, byPrefix} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return zero, fmt.Errorf("%q is ambiguous: %d matches, use the id", ref, len(matches))
		}
	}
	return zero, apperrors.NotFound(sentinel, ref)
}

// ResolveGoal looks a goal up by id, title or id prefix.
func (c *Context) ResolveGoal(ref string) (models.Goal, error) {
	return resolve(ref, c.Store.Goals(),
		func(g models.Goal) string { return g.ID },
		func(g models.Goal) string { return g.Title },
		apperrors.ErrGoalNotFound)
}

// PreselectGoal is the goal id a form should start on: ref when given, the
// focused goal otherwise, or "" to leave the choice to the form.
func (c *Context) PreselectGoal(ref string) (string, error) {
	if strings.TrimSpace(ref) != "" {
		g, err := c.ResolveGoal(ref)
		return g.ID, err
	}
	if g, ok := c.Store.FocusedGoal(); ok {
		return g.ID, nil
	}
	return "", nil
}

// GoalOrFocused resolves ref, or returns the focused goal when ref is empty.
func (c *Context) GoalOrFocused(ref string) (models.Goal, error) {
	if strings.TrimSpace(ref) != "" {
		return c.ResolveGoal(ref)
	}
	if g, ok := c.Store.FocusedGoal(); ok {
		return g, nil
	}
	return models.Goal{}, ErrNoGoal
}

// ResolveHabit looks a habit up by id, name or id prefix across all goals.
func (c *Context) ResolveHabit(ref string) (models.Habit, error) {
	return resolve(ref, c.Store.Habits(""),
		func(h models.Habit) string { return h.ID },
		func(h models.Habit) string { return h.Name },
		apperrors.ErrHabitNotFound)
}

// ResolveRoutine looks a routine up by id, name or id prefix across all goals.
func (c *Context) ResolveRoutine(ref string) (models.Routine, error) {
	return resolve(ref, c.Store.Routines(""),
		func(r models.Routine) string { return r.ID },
		func(r models.Routine) string { return r.Name },
		apperrors.ErrRoutineNotFound)
}

// ShortID trims a uuid for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
