// Package routines is the routine checklist pane.
package routines

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/summit/internal/models"
)

type AddRoutineMsg struct{}

type CompleteRoutineMsg struct {
	ID string
}

type DeleteRoutineMsg struct {
	ID   string
	Name string
}

var (
	nameStyle     = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	stepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// LastDone describes LastCompletedAt relative to now.
func LastDone(r models.Routine, now time.Time) string {
	if r.LastCompletedAt == nil {
		return "never completed"
	}
	at := r.LastCompletedAt.In(now.Location())
	y1, m1, d1 := at.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "done today at " + at.Format("15:04")
	}
	return "last done " + at.Format("2006-01-02 15:04")
}

// Render draws one routine: its name, numbered steps and when it was last done.
func Render(r models.Routine, now time.Time, selected bool) string {
	var b strings.Builder
	prefix, style := "  ", nameStyle
	if selected {
		prefix, style = "> ", selectedStyle
	}
	b.WriteString(prefix + style.Render(r.Name) + "  " + metaStyle.Render(LastDone(r, now)))
	for i, step := range r.Steps {
		b.WriteString("\n" + stepStyle.Render(fmt.Sprintf("     %d. %s", i+1, step)))
	}
	return b.String()
}

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Complete key.Binding
	Add      key.Binding
	Delete   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c", "enter"),
			key.WithHelp("c", "complete"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add routine"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	routines []models.Routine
	cursor   int
	now      func() time.Time
	keys     KeyMap
	width    int
	height   int
}

func New(routines []models.Routine, now func() time.Time) Model {
	m := Model{now: now, keys: DefaultKeyMap()}
	m.SetRoutines(routines)
	return m
}

// SetRoutines replaces the list, keeping the cursor in range.
func (m *Model) SetRoutines(routines []models.Routine) {
	m.routines = routines
	if m.cursor >= len(routines) {
		m.cursor = len(routines) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Selected() (models.Routine, bool) {
	if len(m.routines) == 0 {
		return models.Routine{}, false
	}
	return m.routines[m.cursor], true
}

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.routines)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Add):
		return m, func() tea.Msg { return AddRoutineMsg{} }
	case key.Matches(keyMsg, m.keys.Complete):
		if r, ok := m.Selected(); ok {
			return m, func() tea.Msg { return CompleteRoutineMsg{ID: r.ID} }
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if r, ok := m.Selected(); ok {
			return m, func() tea.Msg { return DeleteRoutineMsg{ID: r.ID, Name: r.Name} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.routines) == 0 {
		return "\n  No routines yet.\n  Press 'a' to add one."
	}
	now := m.now()
	blocks := make([]string, len(m.routines))
	for i, r := range m.routines {
		blocks[i] = Render(r, now, i == m.cursor)
	}
	return strings.Join(blocks, "\n\n")
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
