package models

import "time"

// Goal is a long-horizon objective that habits and routines hang off.
type Goal struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Metric     string    `json:"metric,omitempty"`     // free-text success criterion
	TargetDate string    `json:"targetDate,omitempty"` // YYYY-MM-DD as entered, no TZ normalisation
	Why        string    `json:"why,omitempty"`
	Completed  bool      `json:"completed"`
	CreatedAt  time.Time `json:"createdAt"`
}

// GoalInput holds the user-supplied fields of a new goal.
type GoalInput struct {
	Title      string
	Metric     string
	TargetDate string
	Why        string
}

// GoalPatch is a partial update. Nil fields are left untouched.
type GoalPatch struct {
	Title      *string
	Metric     *string
	TargetDate *string
	Why        *string
	Completed  *bool
}

// IsEmpty reports whether the patch would change nothing.
func (p GoalPatch) IsEmpty() bool {
	return p.Title == nil && p.Metric == nil && p.TargetDate == nil && p.Why == nil && p.Completed == nil
}

// Apply merges the set fields onto g. ID and CreatedAt are never touched.
func (p GoalPatch) Apply(g *Goal) {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Metric != nil {
		g.Metric = *p.Metric
	}
	if p.TargetDate != nil {
		g.TargetDate = *p.TargetDate
	}
	if p.Why != nil {
		g.Why = *p.Why
	}
	if p.Completed != nil {
		g.Completed = *p.Completed
	}
}
