package routines

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/summit/internal/models"
)

var fixedNow = time.Date(2026, 3, 4, 18, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLastDone(t *testing.T) {
	today := time.Date(2026, 3, 4, 7, 5, 0, 0, time.UTC)
	earlier := time.Date(2026, 2, 27, 21, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   *time.Time
		want string
	}{
		{"never", nil, "never completed"},
		{"today", &today, "done today at 07:05"},
		{"earlier", &earlier, "last done 2026-02-27 21:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LastDone(models.Routine{LastCompletedAt: tt.at}, fixedNow)
			if got != tt.want {
				t.Errorf("LastDone = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	r := models.Routine{Name: "Morning", Steps: []string{"Stretch", "Plan day"}}
	out := Render(r, fixedNow, true)
	for _, want := range []string{"> ", "Morning", "1. Stretch", "2. Plan day", "never completed"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestKeys(t *testing.T) {
	m := New([]models.Routine{{ID: "r1", Name: "Morning"}, {ID: "r2", Name: "Evening"}}, clock)

	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("j"))
	_, cmd := m.Update(keyMsg("c"))
	if got := cmd(); got != (CompleteRoutineMsg{ID: "r2"}) {
		t.Errorf("complete = %#v", got)
	}
	_, cmd = m.Update(keyMsg("d"))
	if got := cmd(); got != (DeleteRoutineMsg{ID: "r2", Name: "Evening"}) {
		t.Errorf("delete = %#v", got)
	}
	m, _ = m.Update(keyMsg("k"))
	if r, _ := m.Selected(); r.ID != "r1" {
		t.Errorf("Selected = %q, want r1", r.ID)
	}
}

func TestEmpty(t *testing.T) {
	m := New(nil, clock)
	if _, cmd := m.Update(keyMsg("c")); cmd != nil {
		t.Error("complete on empty pane should do nothing")
	}
	if !strings.Contains(m.View(), "No routines yet") {
		t.Error("empty view missing hint")
	}
	m.SetRoutines([]models.Routine{{ID: "r1", Name: "Morning"}})
	if r, ok := m.Selected(); !ok || r.ID != "r1" {
		t.Error("selection not restored after refill")
	}
}
