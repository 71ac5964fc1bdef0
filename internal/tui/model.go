package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/summit/internal/constants"
	"github.com/julianstephens/summit/internal/metrics"
	"github.com/julianstephens/summit/internal/models"
	"github.com/julianstephens/summit/internal/store"
	"github.com/julianstephens/summit/internal/tui/components/goals"
	"github.com/julianstephens/summit/internal/tui/components/habits"
	"github.com/julianstephens/summit/internal/tui/components/routines"
	"github.com/julianstephens/summit/internal/tui/forms"
	"github.com/julianstephens/summit/internal/utils"
)

type SessionState int

const (
	StateGoals SessionState = iota
	StateHabits
	StateRoutines
	StateForm
	StateConfirmDelete
)

// tabCount is the number of tabbed states, which come first in SessionState.
const tabCount = 3

var tabTitles = [tabCount]string{"Goals", "Habits", "Routines"}

type formKind int

const (
	formGoal formKind = iota
	formHabit
	formRoutine
)

type entityKind string

const (
	kindGoal    entityKind = "goal"
	kindHabit   entityKind = "habit"
	kindRoutine entityKind = "routine"
)

type pendingDelete struct {
	kind entityKind
	id   string
	name string
}

// SnapshotMsg carries the store state after a mutation.
type SnapshotMsg struct {
	Snapshot models.Snapshot
}

// Options tunes the dashboard.
type Options struct {
	Now              func() time.Time
	StreakWindowDays int
}

type Model struct {
	store        *store.Store
	now          func() time.Time
	streakWindow int
	updates      chan models.Snapshot
	unsubscribe  func()

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	goalsModel    goals.Model
	habitsModel   habits.Model
	routinesModel routines.Model

	form        *huh.Form
	formKind    formKind
	goalForm    *forms.GoalValues
	habitForm   *forms.HabitValues
	routineForm *forms.RoutineValues
	pending     *pendingDelete

	progress       metrics.Progress
	habitAdherence metrics.Adherence
	focusTitle     string
	status     string

	quitting bool
	width    int
	height   int
}

// NewModel builds the dashboard over s and subscribes to its mutations.
// Call Close when the program exits.
func NewModel(s *store.Store, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.StreakWindowDays <= 0 {
		opts.StreakWindowDays = constants.DefaultStreakWindowDays
	}

	now := opts.Now()
	m := Model{
		store:         s,
		now:           opts.Now,
		streakWindow:  opts.StreakWindowDays,
		updates:       make(chan models.Snapshot, 1),
		state:         StateGoals,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		goalsModel:    goals.New(0, 0),
		habitsModel:   habits.New(nil, utils.WeekDays(now), utils.DayKey(now)),
		routinesModel: routines.New(nil, opts.Now),
	}
	m.unsubscribe = s.Subscribe(publishTo(m.updates))
	m.refresh(s.Snapshot())
	return m
}

// publishTo hands snapshots to the UI without ever blocking the store. When
// the UI has not caught up, the pending snapshot is replaced by the newer one.
func publishTo(ch chan models.Snapshot) func(models.Snapshot) {
	return func(snap models.Snapshot) {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// listen waits for the next store notification.
func (m Model) listen() tea.Cmd {
	ch := m.updates
	return func() tea.Msg {
		return SnapshotMsg{Snapshot: <-ch}
	}
}

// Close stops listening to the store.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// refresh recomputes every pane and the progress footer from snap.
func (m *Model) refresh(snap models.Snapshot) {
	now := m.now()
	today := utils.DayKey(now)
	week := utils.WeekDays(now)

	goalList := append([]models.Goal(nil), snap.Goals...)
	store.SortNewestFirst(goalList)

	focused := ""
	m.focusTitle = ""
	for _, g := range goalList {
		if g.ID == snap.FocusedGoalID {
			focused = g.ID
			m.focusTitle = g.Title
		}
	}

	scopedHabits := make([]models.Habit, 0, len(snap.Habits))
	for i := len(snap.Habits) - 1; i >= 0; i-- {
		if h := snap.Habits[i]; focused == "" || h.GoalID == focused {
			scopedHabits = append(scopedHabits, h)
		}
	}
	scopedRoutines := make([]models.Routine, 0, len(snap.Routines))
	for i := len(snap.Routines) - 1; i >= 0; i-- {
		if r := snap.Routines[i]; focused == "" || r.GoalID == focused {
			scopedRoutines = append(scopedRoutines, r)
		}
	}

	m.goalsModel.SetSnapshot(models.Snapshot{
		Goals:         goalList,
		Habits:        snap.Habits,
		Routines:      snap.Routines,
		FocusedGoalID: focused,
	})
	m.habitsModel.SetHabits(scopedHabits, week, today)
	m.routinesModel.SetRoutines(scopedRoutines)

	m.habitAdherence = metrics.WeeklyAdherence(scopedHabits, week)
	m.progress = metrics.Board(goalList, snap.Habits, now, m.streakWindow)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateGoals:
		gk := m.goalsModel.Keys()
		keys = append(keys, gk.Add, gk.Focus, gk.Done, gk.Delete)
	case StateHabits:
		hk := m.habitsModel.Keys()
		keys = append(keys, hk.Toggle, hk.Add, hk.Delete)
	case StateRoutines:
		rk := m.routinesModel.Keys()
		keys = append(keys, rk.Complete, rk.Add, rk.Delete)
	case StateConfirmDelete:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case StateGoals:
		gk := m.goalsModel.Keys()
		actions = []key.Binding{gk.Add, gk.Focus, gk.Clear, gk.Done, gk.Delete}
	case StateHabits:
		hk := m.habitsModel.Keys()
		actions = []key.Binding{hk.Up, hk.Down, hk.Left, hk.Right, hk.Toggle, hk.Add, hk.Delete}
	case StateRoutines:
		rk := m.routinesModel.Keys()
		actions = []key.Binding{rk.Up, rk.Down, rk.Complete, rk.Add, rk.Delete}
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return m.listen()
}
