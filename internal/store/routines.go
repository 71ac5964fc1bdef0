package store

import (
	"strings"

	apperrors "github.com/julianstephens/summit/internal/errors"
	"github.com/julianstephens/summit/internal/models"
	"github.com/julianstephens/summit/internal/validation"
)

// AddRoutine attaches an ordered checklist to an existing goal. Blank steps
// are dropped; the remaining order is kept.
func (s *Store) AddRoutine(goalID string, in models.RoutineInput) (models.Routine, error) {
	if validation.IsBlank(in.Name) {
		return models.Routine{}, apperrors.ErrBlankName
	}

	s.mu.Lock()
	if s.goalIndex(goalID) < 0 {
		s.mu.Unlock()
		return models.Routine{}, apperrors.NotFound(apperrors.ErrGoalNotFound, goalID)
	}
	routine := models.Routine{
		ID:              s.newID(),
		GoalID:          goalID,
		Name:            strings.TrimSpace(in.Name),
		Steps:           validation.CleanSteps(in.Steps),
		LastCompletedAt: nil,
		CreatedAt:       s.now(),
	}
	s.routines = append(s.routines, routine)
	s.mu.Unlock()

	s.notify()
	return routine.Clone(), nil
}

// CompleteRoutine stamps LastCompletedAt with the current time, replacing
// any earlier value.
func (s *Store) CompleteRoutine(routineID string) (models.Routine, error) {
	s.mu.Lock()
	i := s.routineIndex(routineID)
	if i < 0 {
		s.mu.Unlock()
		return models.Routine{}, apperrors.NotFound(apperrors.ErrRoutineNotFound, routineID)
	}
	now := s.now()
	s.routines[i].LastCompletedAt = &now
	routine := s.routines[i].Clone()
	s.mu.Unlock()

	s.notify()
	return routine, nil
}

// DeleteRoutine removes a routine.
func (s *Store) DeleteRoutine(routineID string) error {
	s.mu.Lock()
	i := s.routineIndex(routineID)
	if i < 0 {
		s.mu.Unlock()
		return apperrors.NotFound(apperrors.ErrRoutineNotFound, routineID)
	}
	s.routines = append(s.routines[:i:i], s.routines[i+1:]...)
	s.mu.Unlock()

	s.notify()
	return nil
}

// Routine looks a routine up by id.
func (s *Store) Routine(id string) (models.Routine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.routineIndex(id); i >= 0 {
		return s.routines[i].Clone(), nil
	}
	return models.Routine{}, apperrors.NotFound(apperrors.ErrRoutineNotFound, id)
}

// Routines returns the routines of goalID, or all routines when goalID is "",
// newest first.
func (s *Store) Routines(goalID string) []models.Routine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Routine, 0, len(s.routines))
	for i := len(s.routines) - 1; i >= 0; i-- {
		if r := s.routines[i]; goalID == "" || r.GoalID == goalID {
			out = append(out, r.Clone())
		}
	}
	return out
}

// ScopedRoutines mirrors ScopedHabits.
func (s *Store) ScopedRoutines() []models.Routine {
	return s.Routines(s.FocusedGoalID())
}
