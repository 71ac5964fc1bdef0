// Package metrics derives progress figures from goals and habits. Every
// function is pure: same inputs, same outputs, no clock reads.
package metrics

import (
	"time"

	"github.com/julianstephens/summit/internal/constants"
	"github.com/julianstephens/summit/internal/models"
	"github.com/julianstephens/summit/internal/utils"
)

// Adherence is the share of habit-day slots checked in a week.
type Adherence struct {
	Completed int
	Slots     int
	Percent   int
}

// Totals counts goals by completion state.
type Totals struct {
	Total     int
	Completed int
	Active    int
}

// HabitWeekSummary is one habit's checks in a week against its weekly target.
type HabitWeekSummary struct {
	Done    int
	Target  int
	OnTrack bool
}

// Progress is everything the progress board shows.
type Progress struct {
	Goals     Totals
	Adherence Adherence
	Streak    int
	Week      []string
}

// WeeklyAdherence counts completions of habits falling on weekDays. Every
// habit offers seven slots regardless of its FrequencyPerWeek.
func WeeklyAdherence(habits []models.Habit, weekDays []string) Adherence {
	completed := 0
	for _, h := range habits {
		completed += countDone(h, weekDays)
	}
	slots := len(habits) * constants.DaysPerWeek
	return Adherence{
		Completed: completed,
		Slots:     slots,
		Percent:   percent(completed, slots),
	}
}

// percent rounds 100*n/d half up; 0 when d is 0.
func percent(n, d int) int {
	if d <= 0 {
		return 0
	}
	return (200*n + d) / (2 * d)
}

// ConsistencyStreak counts consecutive active days ending today, where a day
// is active when at least one habit was done on it. If today is inactive the
// streak is 0. The count never exceeds windowDays (default 30).
func ConsistencyStreak(habits []models.Habit, today time.Time, windowDays int) int {
	if windowDays <= 0 {
		windowDays = constants.DefaultStreakWindowDays
	}
	streak := 0
	for _, day := range utils.DaysBack(today, windowDays) {
		if !anyDone(habits, day) {
			break
		}
		streak++
	}
	return streak
}

// GoalTotals counts goals; Active is Total minus Completed.
func GoalTotals(goals []models.Goal) Totals {
	t := Totals{Total: len(goals)}
	for _, g := range goals {
		if g.Completed {
			t.Completed++
		}
	}
	t.Active = t.Total - t.Completed
	return t
}

// HabitWeek reports how many of weekDays the habit was done on, against its
// weekly target.
func HabitWeek(h models.Habit, weekDays []string) HabitWeekSummary {
	done := countDone(h, weekDays)
	return HabitWeekSummary{
		Done:    done,
		Target:  h.FrequencyPerWeek,
		OnTrack: done >= h.FrequencyPerWeek,
	}
}

// Board computes the full progress board for the week containing today.
func Board(goals []models.Goal, habits []models.Habit, today time.Time, windowDays int) Progress {
	week := utils.WeekDays(today)
	return Progress{
		Goals:     GoalTotals(goals),
		Adherence: WeeklyAdherence(habits, week),
		Streak:    ConsistencyStreak(habits, today, windowDays),
		Week:      week,
	}
}

func countDone(h models.Habit, days []string) int {
	n := 0
	for _, d := range days {
		if h.DoneOn(d) {
			n++
		}
	}
	return n
}

func anyDone(habits []models.Habit, day string) bool {
	for _, h := range habits {
		if h.DoneOn(day) {
			return true
		}
	}
	return false
}
