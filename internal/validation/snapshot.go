package validation

import (
	"fmt"

	"github.com/julianstephens/summit/internal/models"
	"github.com/julianstephens/summit/internal/utils"
)

// ConflictType represents the type of integrity problem found in a snapshot
type ConflictType string

const (
	ConflictDuplicateID       ConflictType = "duplicate_id"
	ConflictOrphanHabit       ConflictType = "orphan_habit"
	ConflictOrphanRoutine     ConflictType = "orphan_routine"
	ConflictStaleFocus        ConflictType = "stale_focus"
	ConflictFrequencyRange    ConflictType = "frequency_out_of_range"
	ConflictInvalidDayKey     ConflictType = "invalid_day_key"
	ConflictBlankStep         ConflictType = "blank_step"
	ConflictBlankTitle        ConflictType = "blank_title"
	ConflictInvalidTargetDate ConflictType = "invalid_target_date"
)

// Conflict represents a detected problem in a snapshot
type Conflict struct {
	Type        ConflictType
	Description string
	IDs         []string // ids of the entities involved
	Fixable     bool     // Sanitize repairs this kind of conflict
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents a repair applied by Sanitize
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// CheckSnapshot inspects s without modifying it.
func CheckSnapshot(s models.Snapshot) ValidationResult {
	_, fixes := sanitize(s)
	result := ValidationResult{Conflicts: []Conflict{}}
	for _, f := range fixes {
		result.Conflicts = append(result.Conflicts, f.SourceConflict)
	}

	for _, g := range s.Goals {
		if IsBlank(g.Title) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictBlankTitle,
				Description: fmt.Sprintf("goal %s has a blank title", g.ID),
				IDs:         []string{g.ID},
			})
		}
		if !ValidTargetDate(g.TargetDate) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTargetDate,
				Description: fmt.Sprintf("goal %q has target date %q (expected YYYY-MM-DD)", g.Title, g.TargetDate),
				IDs:         []string{g.ID},
			})
		}
	}

	return result
}

// Sanitize returns a copy of s that satisfies the store's invariants, plus
// the repairs it made. A snapshot produced by the store comes back unchanged.
func Sanitize(s models.Snapshot) (models.Snapshot, []FixAction) {
	return sanitize(s)
}

func sanitize(in models.Snapshot) (models.Snapshot, []FixAction) {
	s := in.Clone()
	var fixes []FixAction
	fix := func(action string, c Conflict) {
		c.Fixable = true
		fixes = append(fixes, FixAction{Action: action, SourceConflict: c})
	}

	goalIDs := make(map[string]bool, len(s.Goals))
	goals := s.Goals[:0]
	for _, g := range s.Goals {
		if goalIDs[g.ID] {
			fix("dropped duplicate goal", Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("goal id %s appears more than once", g.ID),
				IDs:         []string{g.ID},
			})
			continue
		}
		goalIDs[g.ID] = true
		goals = append(goals, g)
	}
	s.Goals = goals

	habitIDs := make(map[string]bool, len(s.Habits))
	habits := s.Habits[:0]
	for _, h := range s.Habits {
		switch {
		case habitIDs[h.ID]:
			fix("dropped duplicate habit", Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("habit id %s appears more than once", h.ID),
				IDs:         []string{h.ID},
			})
			continue
		case !goalIDs[h.GoalID]:
			fix("dropped orphan habit", Conflict{
				Type:        ConflictOrphanHabit,
				Description: fmt.Sprintf("habit %q references missing goal %s", h.Name, h.GoalID),
				IDs:         []string{h.ID, h.GoalID},
			})
			continue
		}
		habitIDs[h.ID] = true

		if clamped := ClampFrequency(h.FrequencyPerWeek); clamped != h.FrequencyPerWeek {
			fix(fmt.Sprintf("clamped frequency %d to %d", h.FrequencyPerWeek, clamped), Conflict{
				Type:        ConflictFrequencyRange,
				Description: fmt.Sprintf("habit %q has frequency %d/week outside 1-7", h.Name, h.FrequencyPerWeek),
				IDs:         []string{h.ID},
			})
			h.FrequencyPerWeek = clamped
		}

		if h.Completions == nil {
			h.Completions = models.CompletionSet{}
		}
		for key := range h.Completions {
			if !utils.IsDayKey(key) {
				fix(fmt.Sprintf("removed completion %q", key), Conflict{
					Type:        ConflictInvalidDayKey,
					Description: fmt.Sprintf("habit %q has malformed completion key %q", h.Name, key),
					IDs:         []string{h.ID},
				})
				delete(h.Completions, key)
			}
		}
		habits = append(habits, h)
	}
	s.Habits = habits

	routineIDs := make(map[string]bool, len(s.Routines))
	routines := s.Routines[:0]
	for _, r := range s.Routines {
		switch {
		case routineIDs[r.ID]:
			fix("dropped duplicate routine", Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("routine id %s appears more than once", r.ID),
				IDs:         []string{r.ID},
			})
			continue
		case !goalIDs[r.GoalID]:
			fix("dropped orphan routine", Conflict{
				Type:        ConflictOrphanRoutine,
				Description: fmt.Sprintf("routine %q references missing goal %s", r.Name, r.GoalID),
				IDs:         []string{r.ID, r.GoalID},
			})
			continue
		}
		routineIDs[r.ID] = true

		cleaned := CleanSteps(r.Steps)
		if len(cleaned) != len(r.Steps) {
			fix(fmt.Sprintf("removed %d blank step(s)", len(r.Steps)-len(cleaned)), Conflict{
				Type:        ConflictBlankStep,
				Description: fmt.Sprintf("routine %q has blank steps", r.Name),
				IDs:         []string{r.ID},
			})
		}
		r.Steps = cleaned
		routines = append(routines, r)
	}
	s.Routines = routines

	if s.FocusedGoalID != "" && !goalIDs[s.FocusedGoalID] {
		fix("cleared focus", Conflict{
			Type:        ConflictStaleFocus,
			Description: fmt.Sprintf("focused goal %s does not exist", s.FocusedGoalID),
			IDs:         []string{s.FocusedGoalID},
		})
		s.FocusedGoalID = ""
	}

	return s, fixes
}
