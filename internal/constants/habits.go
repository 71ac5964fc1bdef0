package constants

const (
	// Habit frequency bounds, inclusive. Out-of-range input is clamped, never rejected.
	MinFrequencyPerWeek     = 1
	MaxFrequencyPerWeek     = 7
	DefaultFrequencyPerWeek = 3

	DaysPerWeek = 7

	// DefaultStreakWindowDays bounds how far back the consistency streak looks.
	DefaultStreakWindowDays = 30
)
