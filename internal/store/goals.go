package store

import (
	"sort"
	"strings"

	apperrors "github.com/julianstephens/summit/internal/errors"
	"github.com/julianstephens/summit/internal/models"
	"github.com/julianstephens/summit/internal/validation"
)

// AddGoal creates a goal and focuses it. The title must not be blank.
func (s *Store) AddGoal(in models.GoalInput) (models.Goal, error) {
	if validation.IsBlank(in.Title) {
		return models.Goal{}, apperrors.ErrBlankTitle
	}

	s.mu.Lock()
	goal := models.Goal{
		ID:         s.newID(),
		Title:      strings.TrimSpace(in.Title),
		Metric:     in.Metric,
		TargetDate: in.TargetDate,
		Why:        in.Why,
		Completed:  false,
		CreatedAt:  s.now(),
	}
	s.goals = append(s.goals, goal)
	s.focused = goal.ID
	s.mu.Unlock()

	s.notify()
	return goal, nil
}

// UpdateGoal shallow-merges patch onto the goal with the given id.
func (s *Store) UpdateGoal(id string, patch models.GoalPatch) (models.Goal, error) {
	if patch.Title != nil && validation.IsBlank(*patch.Title) {
		return models.Goal{}, apperrors.ErrBlankTitle
	}

	s.mu.Lock()
	i := s.goalIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Goal{}, apperrors.NotFound(apperrors.ErrGoalNotFound, id)
	}
	if patch.IsEmpty() {
		goal := s.goals[i]
		s.mu.Unlock()
		return goal, nil
	}
	patch.Apply(&s.goals[i])
	goal := s.goals[i]
	s.mu.Unlock()

	s.notify()
	return goal, nil
}

// SetGoalCompleted is a convenience over UpdateGoal.
func (s *Store) SetGoalCompleted(id string, completed bool) (models.Goal, error) {
	return s.UpdateGoal(id, models.GoalPatch{Completed: &completed})
}

// DeleteGoal removes the goal together with its habits and routines, and
// clears focus if it pointed at the goal. The cascade is one atomic step.
func (s *Store) DeleteGoal(id string) error {
	s.mu.Lock()
	i := s.goalIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return apperrors.NotFound(apperrors.ErrGoalNotFound, id)
	}

	s.goals = append(s.goals[:i:i], s.goals[i+1:]...)

	habits := make([]models.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		if h.GoalID != id {
			habits = append(habits, h)
		}
	}
	s.habits = habits

	routines := make([]models.Routine, 0, len(s.routines))
	for _, r := range s.routines {
		if r.GoalID != id {
			routines = append(routines, r)
		}
	}
	s.routines = routines

	if s.focused == id {
		s.focused = ""
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// SetFocusedGoal sets or, with an empty id, clears the focused goal. The id is
// not checked; a stale id reads back as "no focus".
func (s *Store) SetFocusedGoal(id string) {
	s.mu.Lock()
	if s.focused == id {
		s.mu.Unlock()
		return
	}
	s.focused = id
	s.mu.Unlock()

	s.notify()
}

// FocusedGoal returns the focused goal, or false when there is none or the
// focused id no longer exists.
func (s *Store) FocusedGoal() (models.Goal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.focused == "" {
		return models.Goal{}, false
	}
	if i := s.goalIndex(s.focused); i >= 0 {
		return s.goals[i], true
	}
	return models.Goal{}, false
}

// FocusedGoalID is FocusedGoal's id, or "" when nothing valid is focused.
func (s *Store) FocusedGoalID() string {
	g, ok := s.FocusedGoal()
	if !ok {
		return ""
	}
	return g.ID
}

// Goal looks a goal up by id.
func (s *Store) Goal(id string) (models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.goalIndex(id); i >= 0 {
		return s.goals[i], nil
	}
	return models.Goal{}, apperrors.NotFound(apperrors.ErrGoalNotFound, id)
}

// Goals returns every goal, newest first.
func (s *Store) Goals() []models.Goal {
	s.mu.RLock()
	goals := append([]models.Goal(nil), s.goals...)
	s.mu.RUnlock()
	SortNewestFirst(goals)
	return goals
}

// SortNewestFirst orders goals by CreatedAt descending. Goals created at the
// same instant keep reverse insertion order, so the later one still comes first.
func SortNewestFirst(goals []models.Goal) {
	for i, j := 0, len(goals)-1; i < j; i, j = i+1, j-1 {
		goals[i], goals[j] = goals[j], goals[i]
	}
	sort.SliceStable(goals, func(a, b int) bool {
		return goals[a].CreatedAt.After(goals[b].CreatedAt)
	})
}
