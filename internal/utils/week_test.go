package utils

import (
	"reflect"
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"zero padded", time.Date(2026, 1, 5, 23, 59, 0, 0, time.UTC), "2026-01-05"},
		{"midnight", time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), "2026-12-31"},
		{"leap day", time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), "2024-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayKey(tt.in); got != tt.want {
				t.Errorf("DayKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDayKeyUsesLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	utc := time.Date(2026, 3, 4, 2, 0, 0, 0, time.UTC)
	if got := DayKey(utc.In(ny)); got != "2026-03-03" {
		t.Errorf("DayKey in New York = %q, want 2026-03-03", got)
	}
	if got := DayKey(utc); got != "2026-03-04" {
		t.Errorf("DayKey in UTC = %q, want 2026-03-04", got)
	}
}

func TestIsDayKey(t *testing.T) {
	valid := []string{"2026-03-04", "2024-02-29", "1999-12-31"}
	invalid := []string{"", "2026-3-4", "2026-03-4", "2023-02-29", "2026/03/04", "20260304", "2026-03-04T00:00:00Z", " 2026-03-04"}

	for _, s := range valid {
		if !IsDayKey(s) {
			t.Errorf("IsDayKey(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsDayKey(s) {
			t.Errorf("IsDayKey(%q) = true, want false", s)
		}
	}
}

func TestParseDayKey(t *testing.T) {
	got, err := ParseDayKey("2026-03-04", time.UTC)
	if err != nil {
		t.Fatalf("ParseDayKey failed: %v", err)
	}
	if want := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ParseDayKey() = %v, want %v", got, want)
	}
	if _, err := ParseDayKey("not-a-date", time.UTC); err == nil {
		t.Error("expected error for malformed key")
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday", time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"wednesday", time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"sunday belongs to the previous monday", time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"across a month boundary", time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("WeekStart() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeekDays(t *testing.T) {
	want := []string{"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06", "2026-03-07", "2026-03-08"}

	for _, day := range []int{2, 4, 8} {
		got := WeekDays(time.Date(2026, 3, day, 12, 0, 0, 0, time.UTC))
		if !reflect.DeepEqual(got, want) {
			t.Errorf("WeekDays(March %d) = %v, want %v", day, got, want)
		}
	}
}

func TestWeekDaysAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// Clocks spring forward on Sunday 2026-03-08.
	got := WeekDays(time.Date(2026, 3, 8, 22, 0, 0, 0, ny))
	want := []string{"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06", "2026-03-07", "2026-03-08"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WeekDays() = %v, want %v", got, want)
	}

	// Fall back on Sunday 2026-11-01.
	got = WeekDays(time.Date(2026, 11, 2, 0, 30, 0, 0, ny))
	want = []string{"2026-11-02", "2026-11-03", "2026-11-04", "2026-11-05", "2026-11-06", "2026-11-07", "2026-11-08"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WeekDays() = %v, want %v", got, want)
	}
}

func TestCurrentWeekDays(t *testing.T) {
	days := CurrentWeekDays(time.UTC)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	first, err := ParseDayKey(days[0], time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if first.Weekday() != time.Monday {
		t.Errorf("week starts on %v, want Monday", first.Weekday())
	}
}

func TestDaysBack(t *testing.T) {
	got := DaysBack(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), 3)
	want := []string{"2026-03-02", "2026-03-01", "2026-02-28"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DaysBack() = %v, want %v", got, want)
	}
	if got := DaysBack(time.Now(), 0); got != nil {
		t.Errorf("DaysBack(0) = %v, want nil", got)
	}
}

func TestDaysBackAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	got := DaysBack(time.Date(2026, 3, 9, 0, 30, 0, 0, ny), 3)
	want := []string{"2026-03-09", "2026-03-08", "2026-03-07"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DaysBack() = %v, want %v", got, want)
	}
}
