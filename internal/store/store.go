// Package store owns the in-memory goal, habit and routine collections and
// the focused-goal selection. Every mutation is applied atomically and then
// broadcast to subscribers as a full snapshot.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/summit/internal/models"
	"github.com/julianstephens/summit/internal/validation"
)

// Listener receives a copy of the state after every mutation.
type Listener func(models.Snapshot)

// Store is the single owner of application state for a session.
type Store struct {
	mu       sync.RWMutex
	goals    []models.Goal
	habits   []models.Habit
	routines []models.Routine
	focused  string

	now   func() time.Time
	newID func() string

	subMu     sync.Mutex
	listeners map[int]Listener
	nextSub   int
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithSnapshot seeds the store, typically from a persisted snapshot. The
// snapshot is sanitized first so the store's invariants hold from the start.
func WithSnapshot(snap models.Snapshot) Option {
	return func(s *Store) {
		clean, _ := validation.Sanitize(snap)
		s.goals = clean.Goals
		s.habits = clean.Habits
		s.routines = clean.Routines
		s.focused = clean.FocusedGoalID
	}
}

// New creates an empty store unless WithSnapshot is given.
func New(opts ...Option) *Store {
	s := &Store{
		goals:     []models.Goal{},
		habits:    []models.Habit{},
		routines:  []models.Routine{},
		now:       time.Now,
		newID:     uuid.NewString,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to run after every successful mutation and returns
// a function that removes it.
func (s *Store) Subscribe(fn func(models.Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.listeners, id)
			s.subMu.Unlock()
		})
	}
}

// notify must be called without s.mu held.
func (s *Store) notify() {
	snap := s.Snapshot()

	s.subMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap.Clone())
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() models.Snapshot {
	return models.Snapshot{
		Goals:         s.goals,
		Habits:        s.habits,
		Routines:      s.routines,
		FocusedGoalID: s.focused,
	}.Clone()
}

// Replace swaps the whole state for snap (sanitized) and notifies.
// Used when restoring a backup.
func (s *Store) Replace(snap models.Snapshot) {
	clean, _ := validation.Sanitize(snap)
	s.mu.Lock()
	s.goals = clean.Goals
	s.habits = clean.Habits
	s.routines = clean.Routines
	s.focused = clean.FocusedGoalID
	s.mu.Unlock()
	s.notify()
}

func (s *Store) goalIndex(id string) int {
	for i := range s.goals {
		if s.goals[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) habitIndex(id string) int {
	for i := range s.habits {
		if s.habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) routineIndex(id string) int {
	for i := range s.routines {
		if s.routines[i].ID == id {
			return i
		}
	}
	return -1
}
