package store

import (
	"strings"

	apperrors "github.com/julianstephens/summit/internal/errors"
	"github.com/julianstephens/summit/internal/models"
	"github.com/julianstephens/summit/internal/utils"
	"github.com/julianstephens/summit/internal/validation"
)

// AddHabit attaches a new habit to an existing goal. The frequency is
// clamped to [1,7] and defaults to 3 when unspecified.
func (s *Store) AddHabit(goalID string, in models.HabitInput) (models.Habit, error) {
	if validation.IsBlank(in.Name) {
		return models.Habit{}, apperrors.ErrBlankName
	}

	s.mu.Lock()
	if s.goalIndex(goalID) < 0 {
		s.mu.Unlock()
		return models.Habit{}, apperrors.NotFound(apperrors.ErrGoalNotFound, goalID)
	}
	habit := models.Habit{
		ID:               s.newID(),
		GoalID:           goalID,
		Name:             strings.TrimSpace(in.Name),
		FrequencyPerWeek: validation.FrequencyOrDefault(in.FrequencyPerWeek),
		Completions:      models.CompletionSet{},
		CreatedAt:        s.now(),
	}
	s.habits = append(s.habits, habit)
	s.mu.Unlock()

	s.notify()
	return habit.Clone(), nil
}

// ToggleHabitCompletion flips whether the habit was done on dayKey and
// reports the new state.
func (s *Store) ToggleHabitCompletion(habitID, dayKey string) (bool, error) {
	if !utils.IsDayKey(dayKey) {
		return false, apperrors.ErrInvalidDayKey
	}

	s.mu.Lock()
	i := s.habitIndex(habitID)
	if i < 0 {
		s.mu.Unlock()
		return false, apperrors.NotFound(apperrors.ErrHabitNotFound, habitID)
	}
	// Copy-on-write so snapshots already handed out never change underneath.
	completions := s.habits[i].Completions.Clone()
	done := completions.Toggle(dayKey)
	s.habits[i].Completions = completions
	s.mu.Unlock()

	s.notify()
	return done, nil
}

// DeleteHabit removes a habit. Habits own nothing, so there is no cascade.
func (s *Store) DeleteHabit(habitID string) error {
	s.mu.Lock()
	i := s.habitIndex(habitID)
	if i < 0 {
		s.mu.Unlock()
		return apperrors.NotFound(apperrors.ErrHabitNotFound, habitID)
	}
	s.habits = append(s.habits[:i:i], s.habits[i+1:]...)
	s.mu.Unlock()

	s.notify()
	return nil
}

// Habit looks a habit up by id.
func (s *Store) Habit(id string) (models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.habitIndex(id); i >= 0 {
		return s.habits[i].Clone(), nil
	}
	return models.Habit{}, apperrors.NotFound(apperrors.ErrHabitNotFound, id)
}

// Habits returns the habits of goalID, or of every goal when goalID is "".
// Order is newest first.
func (s *Store) Habits(goalID string) []models.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Habit, 0, len(s.habits))
	for i := len(s.habits) - 1; i >= 0; i-- {
		if h := s.habits[i]; goalID == "" || h.GoalID == goalID {
			out = append(out, h.Clone())
		}
	}
	return out
}

// ScopedHabits returns the focused goal's habits, or all habits when nothing
// is focused. This is the scope the habit views and adherence use.
func (s *Store) ScopedHabits() []models.Habit {
	return s.Habits(s.FocusedGoalID())
}
