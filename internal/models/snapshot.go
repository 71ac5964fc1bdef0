package models

// Snapshot is the complete persisted state of the application.
type Snapshot struct {
	Goals         []Goal    `json:"goals"`
	Habits        []Habit   `json:"habits"`
	Routines      []Routine `json:"routines"`
	FocusedGoalID string    `json:"focusedGoalId"` // empty means no focus
}

// Clone returns a deep copy of s. Nil collections become empty ones.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Goals:         make([]Goal, len(s.Goals)),
		Habits:        make([]Habit, len(s.Habits)),
		Routines:      make([]Routine, len(s.Routines)),
		FocusedGoalID: s.FocusedGoalID,
	}
	copy(out.Goals, s.Goals)
	for i, h := range s.Habits {
		out.Habits[i] = h.Clone()
	}
	for i, r := range s.Routines {
		out.Routines[i] = r.Clone()
	}
	return out
}

// IsEmpty reports whether the snapshot holds nothing worth persisting.
func (s Snapshot) IsEmpty() bool {
	return len(s.Goals) == 0 && len(s.Habits) == 0 && len(s.Routines) == 0 && s.FocusedGoalID == ""
}
