// Package goals is the goal list pane.
package goals

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/summit/internal/models"
)

type AddGoalMsg struct{}

type FocusGoalMsg struct {
	ID string
}

type ToggleGoalMsg struct {
	ID        string
	Completed bool
}

type DeleteGoalMsg struct {
	ID    string
	Title string
}

type Item struct {
	Goal      models.Goal
	IsFocused bool
	Habits    int
	Routines  int
}

func (i Item) Title() string {
	mark := "○ "
	if i.Goal.Completed {
		mark = "✓ "
	}
	title := mark + i.Goal.Title
	if i.IsFocused {
		title += "  ★"
	}
	return title
}

func (i Item) Description() string {
	var parts []string
	if i.Goal.Metric != "" {
		parts = append(parts, i.Goal.Metric)
	}
	if i.Goal.TargetDate != "" {
		parts = append(parts, "by "+i.Goal.TargetDate)
	}
	parts = append(parts, fmt.Sprintf("%d habits, %d routines", i.Habits, i.Routines))
	return strings.Join(parts, " · ")
}

func (i Item) FilterValue() string { return i.Goal.Title }

type KeyMap struct {
	Add    key.Binding
	Focus  key.Binding
	Clear  key.Binding
	Done   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add goal"),
		),
		Focus: key.NewBinding(
			key.WithKeys("f", "enter"),
			key.WithHelp("f", "focus"),
		),
		Clear: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "clear focus"),
		),
		Done: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Goals"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Focus, keys.Done, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Focus, keys.Clear, keys.Done, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

// SetSnapshot rebuilds the items from snap, keeping the selection on the
// same goal when it still exists.
func (m *Model) SetSnapshot(snap models.Snapshot) {
	selected, _ := m.Selected()

	habits := make(map[string]int)
	for _, h := range snap.Habits {
		habits[h.GoalID]++
	}
	routines := make(map[string]int)
	for _, r := range snap.Routines {
		routines[r.GoalID]++
	}

	items := make([]list.Item, len(snap.Goals))
	index := 0
	for i, g := range snap.Goals {
		items[i] = Item{
			Goal:      g,
			IsFocused: g.ID == snap.FocusedGoalID,
			Habits:    habits[g.ID],
			Routines:  routines[g.ID],
		}
		if g.ID == selected.ID {
			index = i
		}
	}
	m.list.SetItems(items)
	if len(items) > 0 {
		m.list.Select(index)
	}
}

// Selected returns the goal under the cursor.
func (m Model) Selected() (models.Goal, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Goal, true
	}
	return models.Goal{}, false
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddGoalMsg{} }
		case key.Matches(msg, m.keys.Clear):
			return m, func() tea.Msg { return FocusGoalMsg{ID: ""} }
		case key.Matches(msg, m.keys.Focus):
			if i, ok := m.list.SelectedItem().(Item); ok {
				id := i.Goal.ID
				if i.IsFocused {
					id = ""
				}
				return m, func() tea.Msg { return FocusGoalMsg{ID: id} }
			}
		case key.Matches(msg, m.keys.Done):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleGoalMsg{ID: i.Goal.ID, Completed: !i.Goal.Completed} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteGoalMsg{ID: i.Goal.ID, Title: i.Goal.Title} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No goals yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
