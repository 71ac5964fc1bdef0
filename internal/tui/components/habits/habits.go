// Package habits renders habits as a week grid, one row per habit and one
// column per weekday, and lets the user move a cursor over it.
package habits

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/summit/internal/metrics"
	"github.com/julianstephens/summit/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID  string
	Day string
}

type DeleteHabitMsg struct {
	ID string
}

const (
	doneMark  = "●"
	openMark  = "·"
	nameWidth = 20
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	todayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	openStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	onTrackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	behindStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

var weekdayNames = [7]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// Cursor marks the selected cell; nil renders no selection.
type Cursor struct {
	Row, Col int
}

// Grid draws habits against the seven day keys of week. today is highlighted
// in the header.
func Grid(habits []models.Habit, week []string, today string, cur *Cursor) string {
	var b strings.Builder

	b.WriteString(strings.Repeat(" ", nameWidth+1))
	for i, day := range week {
		label := fmt.Sprintf(" %s ", weekdayNames[i%7])
		if day == today {
			b.WriteString(todayStyle.Render(label))
		} else {
			b.WriteString(headerStyle.Render(label))
		}
	}
	b.WriteString("\n")

	for r, h := range habits {
		b.WriteString(fmt.Sprintf("%-*s ", nameWidth, truncate(h.Name, nameWidth)))
		for c, day := range week {
			cell := "  " + openMark + " "
			style := openStyle
			if h.DoneOn(day) {
				cell = "  " + doneMark + " "
				style = doneStyle
			}
			if cur != nil && cur.Row == r && cur.Col == c {
				style = cursorStyle
			}
			b.WriteString(style.Render(cell))
		}
		sum := metrics.HabitWeek(h, week)
		target := fmt.Sprintf("  %d/%d", sum.Done, sum.Target)
		if sum.OnTrack {
			b.WriteString(onTrackStyle.Render(target + " ✓"))
		} else {
			b.WriteString(behindStyle.Render(target))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// History draws one habit's completions over days (oldest first) as a
// single line of marks.
func History(h models.Habit, days []string) string {
	var b strings.Builder
	for _, d := range days {
		if h.DoneOn(d) {
			b.WriteString(doneMark)
		} else {
			b.WriteString(openMark)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Add    key.Binding
	Delete key.Binding
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
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "toggle day"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add habit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	habits []models.Habit
	week   []string
	today  string
	cursor Cursor
	keys   KeyMap
	width  int
	height int
}

// New starts with the cursor on today's column.
func New(habits []models.Habit, week []string, today string) Model {
	m := Model{keys: DefaultKeyMap()}
	m.SetHabits(habits, week, today)
	for i, d := range week {
		if d == today {
			m.cursor.Col = i
		}
	}
	return m
}

// SetHabits replaces the rows, keeping the cursor in range.
func (m *Model) SetHabits(habits []models.Habit, week []string, today string) {
	m.habits = habits
	m.week = week
	m.today = today
	if m.cursor.Row >= len(habits) {
		m.cursor.Row = len(habits) - 1
	}
	if m.cursor.Row < 0 {
		m.cursor.Row = 0
	}
	if m.cursor.Col >= len(week) {
		m.cursor.Col = len(week) - 1
	}
	if m.cursor.Col < 0 {
		m.cursor.Col = 0
	}
}

// Selected returns the habit under the cursor.
func (m Model) Selected() (models.Habit, bool) {
	if len(m.habits) == 0 {
		return models.Habit{}, false
	}
	return m.habits[m.cursor.Row], true
}

// SelectedDay returns the day key of the cursor column.
func (m Model) SelectedDay() string {
	if len(m.week) == 0 {
		return ""
	}
	return m.week[m.cursor.Col]
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
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor.Row < len(m.habits)-1 {
			m.cursor.Row++
		}
	case key.Matches(keyMsg, m.keys.Left):
		if m.cursor.Col > 0 {
			m.cursor.Col--
		}
	case key.Matches(keyMsg, m.keys.Right):
		if m.cursor.Col < len(m.week)-1 {
			m.cursor.Col++
		}
	case key.Matches(keyMsg, m.keys.Add):
		return m, func() tea.Msg { return AddHabitMsg{} }
	case key.Matches(keyMsg, m.keys.Toggle):
		if h, ok := m.Selected(); ok {
			day := m.SelectedDay()
			return m, func() tea.Msg { return ToggleHabitMsg{ID: h.ID, Day: day} }
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if h, ok := m.Selected(); ok {
			return m, func() tea.Msg { return DeleteHabitMsg{ID: h.ID} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.habits) == 0 {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	cur := m.cursor
	return Grid(m.habits, m.week, m.today, &cur)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
