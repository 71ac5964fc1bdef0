package models

import "time"

// Routine is an ordered checklist tied to one goal, completed as a whole.
type Routine struct {
	ID              string     `json:"id"`
	GoalID          string     `json:"goalId"`
	Name            string     `json:"name"`
	Steps           []string   `json:"steps"`
	LastCompletedAt *time.Time `json:"lastCompletedAt"` // nil until first completion
	CreatedAt       time.Time  `json:"createdAt"`
}

type RoutineInput struct {
	Name  string
	Steps []string
}

func (r Routine) Clone() Routine {
	r.Steps = append([]string(nil), r.Steps...)
	if r.LastCompletedAt != nil {
		t := *r.LastCompletedAt
		r.LastCompletedAt = &t
	}
	return r
}
