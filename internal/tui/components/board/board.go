// Package board renders the progress board: goal totals, weekly habit
// adherence and the consistency streak.
package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/summit/internal/metrics"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

const barWidth = 20

// Bar draws a fixed-width meter for a 0-100 percentage.
func Bar(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * barWidth / 100
	return barStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

// StreakLabel reads "1 day" / "N days".
func StreakLabel(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// Render draws the full board inside a bordered panel. scope names what the
// habit figures cover, e.g. "all goals" or a focused goal's title.
func Render(p metrics.Progress, scope string) string {
	week := ""
	if len(p.Week) == 7 {
		week = fmt.Sprintf("%s .. %s", p.Week[0], p.Week[6])
	}

	rows := []string{
		titleStyle.Render("Progress") + labelStyle.Render("  "+scope),
		"",
		row("Goals", fmt.Sprintf("%d total, %d completed, %d active", p.Goals.Total, p.Goals.Completed, p.Goals.Active)),
		row("Week", week),
		row("Adherence", fmt.Sprintf("%s %3d%%  (%d/%d)", Bar(p.Adherence.Percent), p.Adherence.Percent, p.Adherence.Completed, p.Adherence.Slots)),
		row("Streak", StreakLabel(p.Streak)),
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func row(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-10s", label)) + " " + valueStyle.Render(value)
}

// Footer is the single-line summary shown under the dashboard.
func Footer(p metrics.Progress) string {
	return strings.Join([]string{
		labelStyle.Render("goals ") + valueStyle.Render(fmt.Sprintf("%d/%d done", p.Goals.Completed, p.Goals.Total)),
		labelStyle.Render("adherence ") + valueStyle.Render(fmt.Sprintf("%d%%", p.Adherence.Percent)),
		labelStyle.Render("streak ") + valueStyle.Render(StreakLabel(p.Streak)),
	}, labelStyle.Render("  •  "))
}
