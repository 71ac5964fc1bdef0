package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/summit/internal/tui/components/board"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateGoals:
		content = docStyle.Render(m.goalsModel.View())
	case StateHabits:
		content = docStyle.Render(m.viewHabitHeader() + "\n\n" + m.habitsModel.View())
	case StateRoutines:
		content = docStyle.Render(m.routinesModel.View())
	case StateForm:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewTabs(), m.viewFocus(), content, board.Footer(m.progress)}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= tabCount {
		active = m.previousState
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewFocus() string {
	if m.focusTitle == "" {
		return focusStyle.Render(" No focused goal, showing all habits and routines")
	}
	return focusStyle.Render(" Focus: " + m.focusTitle)
}

// viewHabitHeader reports adherence for the habits shown in the pane only.
func (m Model) viewHabitHeader() string {
	a := m.habitAdherence
	return focusStyle.Render(fmt.Sprintf("Weekly adherence %d%% (%d/%d)", a.Percent, a.Completed, a.Slots))
}

func (m Model) viewConfirmDelete() string {
	question := "Are you sure?"
	if m.pending != nil {
		question = fmt.Sprintf("Delete %s %q?", m.pending.kind, m.pending.name)
		if m.pending.kind == kindGoal {
			question += " Its habits and routines go with it."
		}
	}
	return lipgloss.Place(m.width, max(m.height-chromeHeight, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(question),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
