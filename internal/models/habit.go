package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Habit is a recurring weekly action tied to exactly one goal
type Habit struct {
	ID               string        `json:"id"`
	GoalID           string        `json:"goalId"`
	Name             string        `json:"name"`
	FrequencyPerWeek int           `json:"frequencyPerWeek"`
	Completions      CompletionSet `json:"completions"`
	CreatedAt        time.Time     `json:"createdAt"`
}

// HabitInput holds the user-supplied fields of a new habit.
// A nil FrequencyPerWeek means "not specified".
type HabitInput struct {
	Name             string
	FrequencyPerWeek *int
}

// Clone returns a copy of h that shares no state with it.
func (h Habit) Clone() Habit {
	h.Completions = h.Completions.Clone()
	return h
}

// DoneOn reports whether the habit was marked done on the given day key.
func (h Habit) DoneOn(dayKey string) bool {
	return h.Completions.Has(dayKey)
}

// CompletionSet is the set of day keys (YYYY-MM-DD) on which a habit was done.
// Membership is the only information stored.
type CompletionSet map[string]struct{}

// NewCompletionSet builds a set from the given day keys.
func NewCompletionSet(keys ...string) CompletionSet {
	s := make(CompletionSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s CompletionSet) Has(dayKey string) bool {
	_, ok := s[dayKey]
	return ok
}

// Toggle flips membership of dayKey and reports whether it is now present.
func (s CompletionSet) Toggle(dayKey string) bool {
	if _, ok := s[dayKey]; ok {
		delete(s, dayKey)
		return false
	}
	s[dayKey] = struct{}{}
	return true
}

// Keys returns the members in ascending order.
func (s CompletionSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s CompletionSet) Clone() CompletionSet {
	out := make(CompletionSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// MarshalJSON writes the set as a sorted array of day keys.
func (s CompletionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Keys())
}

// UnmarshalJSON accepts either an array of day keys or the legacy
// object form {"2024-05-01": true}, where only truthy values are members.
func (s *CompletionSet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	out := CompletionSet{}

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
	case data[0] == '[':
		var keys []string
		if err := json.Unmarshal(data, &keys); err != nil {
			return fmt.Errorf("invalid completions array: %w", err)
		}
		for _, k := range keys {
			out[k] = struct{}{}
		}
	case data[0] == '{':
		var legacy map[string]any
		if err := json.Unmarshal(data, &legacy); err != nil {
			return fmt.Errorf("invalid completions object: %w", err)
		}
		for k, v := range legacy {
			if truthy(v) {
				out[k] = struct{}{}
			}
		}
	default:
		return fmt.Errorf("invalid completions: expected array or object")
	}

	*s = out
	return nil
}

func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case nil:
		return false
	default:
		return true
	}
}
