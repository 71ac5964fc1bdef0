package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/summit/internal/logger"
	"github.com/julianstephens/summit/internal/tui/components/goals"
	"github.com/julianstephens/summit/internal/tui/components/habits"
	"github.com/julianstephens/summit/internal/tui/components/routines"
	"github.com/julianstephens/summit/internal/tui/forms"
)

// chromeHeight is the space taken by tabs, focus line, footer and help.
const chromeHeight = 8

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.goalsModel.SetSize(msg.Width-4, msg.Height-chromeHeight)
		m.habitsModel.SetSize(msg.Width-4, msg.Height-chromeHeight)
		m.routinesModel.SetSize(msg.Width-4, msg.Height-chromeHeight)
		if m.state != StateForm {
			return m, nil
		}

	case SnapshotMsg:
		m.refresh(msg.Snapshot)
		return m, m.listen()
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case goals.AddGoalMsg:
		return m.openGoalForm()
	case goals.FocusGoalMsg:
		m.store.SetFocusedGoal(msg.ID)
		m.report(nil)
		return m, nil
	case goals.ToggleGoalMsg:
		_, err := m.store.SetGoalCompleted(msg.ID, msg.Completed)
		m.report(err)
		return m, nil
	case goals.DeleteGoalMsg:
		return m.askDelete(kindGoal, msg.ID, msg.Title), nil

	case habits.AddHabitMsg:
		return m.openHabitForm()
	case habits.ToggleHabitMsg:
		_, err := m.store.ToggleHabitCompletion(msg.ID, msg.Day)
		m.report(err)
		return m, nil
	case habits.DeleteHabitMsg:
		name := msg.ID
		if h, err := m.store.Habit(msg.ID); err == nil {
			name = h.Name
		}
		return m.askDelete(kindHabit, msg.ID, name), nil

	case routines.AddRoutineMsg:
		return m.openRoutineForm()
	case routines.CompleteRoutineMsg:
		_, err := m.store.CompleteRoutine(msg.ID)
		m.report(err)
		return m, nil
	case routines.DeleteRoutineMsg:
		return m.askDelete(kindRoutine, msg.ID, msg.Name), nil

	case tea.KeyMsg:
		if m.state == StateGoals && m.goalsModel.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	return m.updateActive(msg)
}

// updateActive forwards msg to the pane of the current tab.
func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateGoals:
		m.goalsModel, cmd = m.goalsModel.Update(msg)
	case StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case StateRoutines:
		m.routinesModel, cmd = m.routinesModel.Update(msg)
	}
	return m, cmd
}

// report shows err in the status line; nil clears it. Failed actions are
// logged and otherwise ignored.
func (m *Model) report(err error) {
	if err != nil {
		logger.Warn("Action failed", "error", err)
		m.status = err.Error()
		return
	}
	m.status = ""
}

func (m Model) openForm(kind formKind, form *huh.Form) (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.state = StateForm
	m.formKind = kind
	m.form = form
	m.status = ""
	return m, m.form.Init()
}

func (m Model) openGoalForm() (tea.Model, tea.Cmd) {
	m.goalForm = &forms.GoalValues{}
	return m.openForm(formGoal, forms.NewGoalForm(m.goalForm))
}

// openHabitForm needs a focused goal; the form preselects it.
func (m Model) openHabitForm() (tea.Model, tea.Cmd) {
	g, ok := m.store.FocusedGoal()
	if !ok {
		m.status = "Focus a goal first (Goals tab, f)"
		return m, nil
	}
	m.habitForm = &forms.HabitValues{GoalID: g.ID}
	return m.openForm(formHabit, forms.NewHabitForm(m.habitForm, m.store.Goals()))
}

func (m Model) openRoutineForm() (tea.Model, tea.Cmd) {
	g, ok := m.store.FocusedGoal()
	if !ok {
		m.status = "Focus a goal first (Goals tab, f)"
		return m, nil
	}
	m.routineForm = &forms.RoutineValues{GoalID: g.ID}
	return m.openForm(formRoutine, forms.NewRoutineForm(m.routineForm, m.store.Goals()))
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		return m.closeForm(), nil
	}

	f, cmd := m.form.Update(msg)
	if f, ok := f.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.report(m.submitForm())
		return m.closeForm(), nil
	case huh.StateAborted:
		return m.closeForm(), nil
	}
	return m, cmd
}

func (m Model) closeForm() Model {
	m.state = m.previousState
	m.form = nil
	return m
}

func (m Model) submitForm() error {
	var err error
	switch m.formKind {
	case formGoal:
		_, err = m.store.AddGoal(m.goalForm.Input())
	case formHabit:
		_, err = m.store.AddHabit(m.habitForm.GoalID, m.habitForm.Input())
	case formRoutine:
		_, err = m.store.AddRoutine(m.routineForm.GoalID, m.routineForm.Input())
	}
	return err
}

func (m Model) askDelete(kind entityKind, id, name string) Model {
	m.pending = &pendingDelete{kind: kind, id: id, name: name}
	m.previousState = m.state
	m.state = StateConfirmDelete
	return m
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, m.keys.Confirm):
		m.report(m.deletePending())
	case key.Matches(k, m.keys.Cancel):
	default:
		return m, nil
	}
	m.pending = nil
	m.state = m.previousState
	return m, nil
}

func (m Model) deletePending() error {
	p := m.pending
	if p == nil {
		return nil
	}
	switch p.kind {
	case kindGoal:
		return m.store.DeleteGoal(p.id)
	case kindHabit:
		return m.store.DeleteHabit(p.id)
	case kindRoutine:
		return m.store.DeleteRoutine(p.id)
	}
	return fmt.Errorf("unknown item kind %q", p.kind)
}
