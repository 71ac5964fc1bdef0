package utils

import (
	"time"

	"github.com/julianstephens/summit/internal/constants"
)

// DayKey returns the calendar day of t, in t's own location, as YYYY-MM-DD.
// Two instants on the same local day always produce the same key.
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDayKey parses a YYYY-MM-DD key as midnight in loc.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// IsDayKey reports whether s is a well-formed, zero-padded day key.
func IsDayKey(s string) bool {
	t, err := time.Parse(constants.DateFormat, s)
	return err == nil && t.Format(constants.DateFormat) == s
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns Monday 00:00 of the Monday-to-Sunday week containing t.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	d := StartOfDay(t)
	return d.AddDate(0, 0, -offset)
}

// WeekDays returns the seven day keys, Monday through Sunday, of t's week.
func WeekDays(t time.Time) []string {
	start := WeekStart(t)
	days := make([]string, constants.DaysPerWeek)
	for i := range days {
		days[i] = DayKey(start.AddDate(0, 0, i))
	}
	return days
}

// CurrentWeekDays snapshots the week containing "now" in loc.
func CurrentWeekDays(loc *time.Location) []string {
	if loc == nil {
		loc = time.Local
	}
	return WeekDays(time.Now().In(loc))
}

// DaysBack returns n day keys starting at t's day and walking backward.
// Calendar arithmetic keeps this correct across DST transitions.
func DaysBack(t time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	d := StartOfDay(t)
	keys := make([]string, n)
	for i := range keys {
		keys[i] = DayKey(d.AddDate(0, 0, -i))
	}
	return keys
}
