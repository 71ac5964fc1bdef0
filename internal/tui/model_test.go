package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/summit/internal/models"
	"github.com/julianstephens/summit/internal/store"
	"github.com/julianstephens/summit/internal/tui/components/goals"
	"github.com/julianstephens/summit/internal/tui/components/habits"
	"github.com/julianstephens/summit/internal/tui/components/routines"
)

var testNow = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

func setupTestModel(t *testing.T) (Model, *store.Store) {
	t.Helper()
	clock := func() time.Time { return testNow }
	s := store.New(store.WithClock(clock))
	m := NewModel(s, Options{Now: clock, StreakWindowDays: 30})
	t.Cleanup(m.Close)
	return m, s
}

// step feeds msg to m and returns the updated model.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// drain delivers the pending store notification, as the program loop would.
func drain(t *testing.T, m Model) Model {
	t.Helper()
	select {
	case snap := <-m.updates:
		return step(t, m, SnapshotMsg{Snapshot: snap})
	default:
		t.Fatal("no store notification pending")
		return m
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelReflectsStore(t *testing.T) {
	clock := func() time.Time { return testNow }
	s := store.New(store.WithClock(clock))
	g, _ := s.AddGoal(models.GoalInput{Title: "Ship product"})
	h, _ := s.AddHabit(g.ID, models.HabitInput{Name: "Write code"})
	s.ToggleHabitCompletion(h.ID, "2026-03-04")

	m := NewModel(s, Options{Now: clock})
	defer m.Close()

	if m.focusTitle != "Ship product" {
		t.Errorf("focus = %q", m.focusTitle)
	}
	if m.progress.Adherence.Percent != 14 || m.progress.Streak != 1 {
		t.Errorf("progress = %+v", m.progress)
	}
	if m.streakWindow != 30 {
		t.Errorf("default streak window = %d", m.streakWindow)
	}
}

func TestHabitToggleRefreshesThroughSubscription(t *testing.T) {
	m, s := setupTestModel(t)
	g, _ := s.AddGoal(models.GoalInput{Title: "Ship product"})
	m = drain(t, m)
	h, _ := s.AddHabit(g.ID, models.HabitInput{Name: "Write code"})
	m = drain(t, m)

	m = step(t, m, habits.ToggleHabitMsg{ID: h.ID, Day: "2026-03-04"})
	if got, _ := s.Habit(h.ID); !got.DoneOn("2026-03-04") {
		t.Fatal("toggle did not reach the store")
	}
	if m.progress.Adherence.Percent != 0 {
		t.Error("view should not change before the notification arrives")
	}
	m = drain(t, m)
	if m.progress.Adherence.Percent != 14 {
		t.Errorf("adherence = %d, want 14", m.progress.Adherence.Percent)
	}

	m = step(t, m, habits.ToggleHabitMsg{ID: h.ID, Day: "2026-03-04"})
	m = drain(t, m)
	if m.progress.Adherence.Percent != 0 {
		t.Errorf("adherence after second toggle = %d, want 0", m.progress.Adherence.Percent)
	}
}

func TestNotificationsCoalesce(t *testing.T) {
	m, s := setupTestModel(t)
	s.AddGoal(models.GoalInput{Title: "One"})
	s.AddGoal(models.GoalInput{Title: "Two"})
	s.AddGoal(models.GoalInput{Title: "Three"})

	m = drain(t, m)
	if m.progress.Goals.Total != 3 {
		t.Errorf("latest snapshot should win, got %d goals", m.progress.Goals.Total)
	}
	select {
	case <-m.updates:
		t.Error("stale snapshots should have been dropped")
	default:
	}
}

func TestFocusScopesHabits(t *testing.T) {
	m, s := setupTestModel(t)
	a, _ := s.AddGoal(models.GoalInput{Title: "Ship product"})
	b, _ := s.AddGoal(models.GoalInput{Title: "Run"})
	s.AddHabit(a.ID, models.HabitInput{Name: "Write code"})
	s.AddHabit(b.ID, models.HabitInput{Name: "Jog"})
	m = drain(t, m)

	if m.habitAdherence.Slots != 7 || m.focusTitle != "Run" {
		t.Errorf("focused pane: slots = %d, focus = %q", m.habitAdherence.Slots, m.focusTitle)
	}
	if m.progress.Adherence.Slots != 14 {
		t.Errorf("board should cover every habit, slots = %d", m.progress.Adherence.Slots)
	}

	m = step(t, m, goals.FocusGoalMsg{ID: ""})
	m = drain(t, m)
	if m.habitAdherence.Slots != 14 {
		t.Errorf("unfocused pane: slots = %d", m.habitAdherence.Slots)
	}
	if !strings.Contains(m.View(), "No focused goal") {
		t.Error("view should say nothing is focused")
	}
}

func TestBoardIgnoresFocus(t *testing.T) {
	m, s := setupTestModel(t)
	a, _ := s.AddGoal(models.GoalInput{Title: "Ship product"})
	h, _ := s.AddHabit(a.ID, models.HabitInput{Name: "Write code"})
	s.ToggleHabitCompletion(h.ID, "2026-03-04")
	s.AddGoal(models.GoalInput{Title: "Run"})
	m = drain(t, m)

	if m.focusTitle != "Run" {
		t.Fatalf("focus = %q, want the newest goal", m.focusTitle)
	}
	if m.habitAdherence.Slots != 0 {
		t.Errorf("focused goal has no habits, pane slots = %d", m.habitAdherence.Slots)
	}
	if m.progress.Adherence.Percent != 14 || m.progress.Streak != 1 {
		t.Errorf("board = %+v, want 14%% and a 1 day streak", m.progress)
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "Weekly adherence 0% (0/0)") {
		t.Error("habits pane should report the focused goal only")
	}
}

func TestAddHabitNeedsFocus(t *testing.T) {
	m, _ := setupTestModel(t)
	m = step(t, m, habits.AddHabitMsg{})
	if m.state == StateForm {
		t.Fatal("habit form opened without a focused goal")
	}
	if !strings.Contains(m.status, "Focus a goal first") {
		t.Errorf("status = %q", m.status)
	}
}

func TestAddGoalFormOpensAndCancels(t *testing.T) {
	m, _ := setupTestModel(t)
	m = step(t, m, goals.AddGoalMsg{})
	if m.state != StateForm || m.form == nil || m.formKind != formGoal {
		t.Fatalf("state = %v, want goal form", m.state)
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateGoals || m.form != nil {
		t.Errorf("esc should close the form, state = %v", m.state)
	}
}

func TestSubmitForms(t *testing.T) {
	m, s := setupTestModel(t)
	g, _ := s.AddGoal(models.GoalInput{Title: "Ship product"})
	m = drain(t, m)

	m = step(t, m, habits.AddHabitMsg{})
	if m.state != StateForm || m.habitForm.GoalID != g.ID {
		t.Fatalf("habit form should preselect the focused goal")
	}
	m.habitForm.Name = "Write code"
	m.habitForm.Frequency = "10"
	if err := m.submitForm(); err != nil {
		t.Fatal(err)
	}
	hs := s.Habits(g.ID)
	if len(hs) != 1 || hs[0].FrequencyPerWeek != 7 {
		t.Errorf("habits = %+v", hs)
	}

	m = m.closeForm()
	m = step(t, m, routines.AddRoutineMsg{})
	m.routineForm.Name = "Release"
	m.routineForm.Steps = "Tag\n\nPublish"
	if err := m.submitForm(); err != nil {
		t.Fatal(err)
	}
	rs := s.Routines(g.ID)
	if len(rs) != 1 || len(rs[0].Steps) != 2 {
		t.Errorf("routines = %+v", rs)
	}
}

func TestDeleteGoalAfterConfirm(t *testing.T) {
	m, s := setupTestModel(t)
	g, _ := s.AddGoal(models.GoalInput{Title: "Ship product"})
	s.AddHabit(g.ID, models.HabitInput{Name: "Write code"})
	m = drain(t, m)

	m = step(t, m, goals.DeleteGoalMsg{ID: g.ID, Title: g.Title})
	if m.state != StateConfirmDelete {
		t.Fatalf("state = %v, want confirm", m.state)
	}
	if !strings.Contains(m.View(), `Delete goal "Ship product"?`) {
		t.Error("confirm view should name the goal")
	}

	m = step(t, m, keyMsg("n"))
	if m.state != StateGoals || len(s.Goals()) != 1 {
		t.Fatal("cancel should keep the goal")
	}

	m = step(t, m, goals.DeleteGoalMsg{ID: g.ID, Title: g.Title})
	m = step(t, m, keyMsg("y"))
	if len(s.Goals()) != 0 || len(s.Habits("")) != 0 {
		t.Error("goal and its habits should be deleted")
	}
	if m.state != StateGoals {
		t.Errorf("state = %v after confirm", m.state)
	}
}

func TestCompleteRoutine(t *testing.T) {
	m, s := setupTestModel(t)
	g, _ := s.AddGoal(models.GoalInput{Title: "Ship product"})
	r, _ := s.AddRoutine(g.ID, models.RoutineInput{Name: "Release", Steps: []string{"Tag"}})
	m = drain(t, m)

	m = step(t, m, routines.CompleteRoutineMsg{ID: r.ID})
	got, _ := s.Routine(r.ID)
	if got.LastCompletedAt == nil || !got.LastCompletedAt.Equal(testNow) {
		t.Errorf("LastCompletedAt = %v", got.LastCompletedAt)
	}

	m = step(t, m, routines.CompleteRoutineMsg{ID: "missing"})
	if !strings.Contains(m.status, "routine not found") {
		t.Errorf("status = %q", m.status)
	}
}

func TestTabsAndQuit(t *testing.T) {
	m, _ := setupTestModel(t)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateHabits {
		t.Errorf("tab -> %v", m.state)
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateRoutines {
		t.Errorf("shift+tab wraps -> %v", m.state)
	}

	next, cmd := m.Update(keyMsg("q"))
	if !next.(Model).quitting || cmd == nil {
		t.Error("q should quit")
	}
	if next.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
