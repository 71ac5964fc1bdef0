package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/summit/internal/logger"
)

// Domain errors returned by the store. Callers match them with errors.Is.
var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrHabitNotFound   = errors.New("habit not found")
	ErrRoutineNotFound = errors.New("routine not found")
	ErrBlankTitle      = errors.New("goal title cannot be blank")
	ErrBlankName       = errors.New("name cannot be blank")
	ErrInvalidDayKey   = errors.New("invalid day key (expected YYYY-MM-DD)")
)

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrGoalNotFound) ||
		errors.Is(err, ErrHabitNotFound) ||
		errors.Is(err, ErrRoutineNotFound)
}

// NotFound wraps a not-found sentinel with the id that was looked up.
func NotFound(sentinel error, id string) error {
	return fmt.Errorf("%w: %s", sentinel, id)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
