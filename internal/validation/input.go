package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/julianstephens/summit/internal/constants"
	"github.com/julianstephens/summit/internal/utils"
)

// ClampFrequency forces a weekly frequency into [1,7].
func ClampFrequency(f int) int {
	if f < constants.MinFrequencyPerWeek {
		return constants.MinFrequencyPerWeek
	}
	if f > constants.MaxFrequencyPerWeek {
		return constants.MaxFrequencyPerWeek
	}
	return f
}

// FrequencyOrDefault resolves an optional frequency: nil means the default (3),
// anything else is clamped.
func FrequencyOrDefault(f *int) int {
	if f == nil {
		return constants.DefaultFrequencyPerWeek
	}
	return ClampFrequency(*f)
}

// ParseFrequency turns free-form input into a valid frequency. Blank or
// non-numeric input resolves to the default, fractions are truncated, and
// the result is always clamped.
func ParseFrequency(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return constants.DefaultFrequencyPerWeek
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return ClampFrequency(n)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return constants.DefaultFrequencyPerWeek
	}
	if math.IsInf(f, 1) || f > float64(constants.MaxFrequencyPerWeek) {
		return constants.MaxFrequencyPerWeek
	}
	if math.IsInf(f, -1) || f < float64(constants.MinFrequencyPerWeek) {
		return constants.MinFrequencyPerWeek
	}
	return ClampFrequency(int(math.Trunc(f)))
}

// CleanSteps trims each step and drops blank ones, preserving order.
func CleanSteps(steps []string) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitSteps splits a one-step-per-line block into clean steps.
func SplitSteps(raw string) []string {
	return CleanSteps(strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n"))
}

// IsBlank reports whether s has no non-whitespace content.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidTargetDate accepts an empty target or a YYYY-MM-DD date.
func ValidTargetDate(s string) bool {
	return s == "" || utils.IsDayKey(s)
}
