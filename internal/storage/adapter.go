package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/summit/internal/constants"
	"github.com/julianstephens/summit/internal/logger"
	"github.com/julianstephens/summit/internal/models"
	"github.com/julianstephens/summit/internal/validation"
)

// legacyFocusKey is the focus field name written by earlier versions.
const legacyFocusKey = "selectedGoalId"

// Adapter encodes snapshots into one KV slot and decodes them back,
// repairing whatever it can instead of failing.
type Adapter struct {
	KV  KV
	Key string
}

// NewAdapter binds kv to the default namespace key.
func NewAdapter(kv KV) *Adapter {
	return &Adapter{KV: kv, Key: constants.StorageNamespace}
}

// LoadSnapshot reads the slot. It reports false when nothing usable is
// stored: the key is missing, unreadable or not a JSON object. Anything
// else yields a sanitized snapshot with per-field defaults.
func (a *Adapter) LoadSnapshot() (models.Snapshot, bool) {
	data, err := a.KV.Get(a.Key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error("Failed to read snapshot", "key", a.Key, "error", err)
		}
		return models.Snapshot{}.Clone(), false
	}

	snap, err := DecodeSnapshot(data)
	if err != nil {
		logger.Warn("Ignoring unreadable snapshot", "key", a.Key, "error", err)
		return models.Snapshot{}.Clone(), false
	}

	clean, fixes := validation.Sanitize(snap)
	for _, fix := range fixes {
		logger.Warn("Repaired stored data", "action", fix.Action, "conflict", fix.SourceConflict.Type)
	}
	return clean, true
}

// Save writes snap to the slot.
func (a *Adapter) Save(snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := a.KV.Set(a.Key, data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot decodes a stored snapshot leniently. Only a payload that is
// not a JSON object is an error. Each top-level field and each collection
// element decodes on its own, so one bad entry costs only itself.
func DecodeSnapshot(data []byte) (models.Snapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return models.Snapshot{}, fmt.Errorf("snapshot is not a JSON object: %w", err)
	}
	if fields == nil {
		return models.Snapshot{}, errors.New("snapshot is null")
	}

	snap := models.Snapshot{
		Goals:    decodeList[models.Goal](fields["goals"], "goals", decodeGoal),
		Habits:   decodeList[models.Habit](fields["habits"], "habits", decodeHabit),
		Routines: decodeList[models.Routine](fields["routines"], "routines", decodeRoutine),
	}

	focus, ok := decodeFocus(fields["focusedGoalId"])
	if !ok {
		focus, _ = decodeFocus(fields[legacyFocusKey])
	}
	snap.FocusedGoalID = focus
	return snap, nil
}

func decodeList[T any](raw json.RawMessage, field string, decode func(json.RawMessage) (T, error)) []T {
	out := []T{}
	if isNull(raw) {
		return out
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn("Dropping malformed field", "field", field, "error", err)
		return out
	}
	for i, item := range items {
		v, err := decode(item)
		if err != nil {
			logger.Warn("Dropping malformed entry", "field", field, "index", i, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

func decodeGoal(raw json.RawMessage) (models.Goal, error) {
	var g models.Goal
	err := json.Unmarshal(raw, &g)
	return g, err
}

// habitRecord distinguishes an absent frequency from an explicit zero.
type habitRecord struct {
	models.Habit
	FrequencyPerWeek *int `json:"frequencyPerWeek"`
}

func decodeHabit(raw json.RawMessage) (models.Habit, error) {
	var rec habitRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return models.Habit{}, err
	}
	h := rec.Habit
	h.FrequencyPerWeek = validation.FrequencyOrDefault(rec.FrequencyPerWeek)
	if h.Completions == nil {
		h.Completions = models.CompletionSet{}
	}
	return h, nil
}

func decodeRoutine(raw json.RawMessage) (models.Routine, error) {
	var r models.Routine
	if err := json.Unmarshal(raw, &r); err != nil {
		return models.Routine{}, err
	}
	if r.Steps == nil {
		r.Steps = []string{}
	}
	return r, nil
}

// decodeFocus reports false when the field is absent or not a string.
func decodeFocus(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	if isNull(raw) {
		return "", true
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", false
	}
	return id, true
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
