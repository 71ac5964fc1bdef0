package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/summit/internal/config"
	apperrors "github.com/julianstephens/summit/internal/errors"
	"github.com/julianstephens/summit/internal/models"
)

var testNow = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

func setupTestContext(t *testing.T, location string) (*Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Location = location
	cfg.Timezone = "UTC"

	ctx, err := New(cfg, filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("failed to create context: %v", err)
	}
	ctx.Clock = func() time.Time { return testNow }
	out := &bytes.Buffer{}
	ctx.Out = out
	if err := ctx.Open(); err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { ctx.Close() })
	return ctx, out
}

func TestNewRejectsBadTimezone(t *testing.T) {
	cfg := config.Default()
	cfg.Timezone = "Mars/Olympus"
	if _, err := New(cfg, ""); err == nil {
		t.Error("expected timezone error")
	}
}

func TestOpenPersistsAcrossSessions(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "summit.db")

	ctx, _ := setupTestContext(t, dbPath)
	g, err := ctx.Store.AddGoal(models.GoalInput{Title: "Ship product"})
	if err != nil {
		t.Fatal(err)
	}
	ctx.Store.SetFocusedGoal(g.ID)
	if err := ctx.Close(); err != nil {
		t.Fatal(err)
	}

	again, _ := setupTestContext(t, dbPath)
	goals := again.Store.Goals()
	if len(goals) != 1 || goals[0].Title != "Ship product" {
		t.Fatalf("goals after reopen = %+v", goals)
	}
	if again.Store.FocusedGoalID() != g.ID {
		t.Error("focus not persisted")
	}
	if !goals[0].CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want injected clock", goals[0].CreatedAt)
	}
}

func TestToday(t *testing.T) {
	ctx, _ := setupTestContext(t, "memory")
	if got := ctx.Today(); got != "2026-03-04" {
		t.Errorf("Today = %q", got)
	}
}

func TestPrintf(t *testing.T) {
	ctx, out := setupTestContext(t, "memory")
	ctx.Printf("%d goals\n", 3)
	ctx.Println("done")
	if out.String() != "3 goals\ndone\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestPerformAutomaticBackup(t *testing.T) {
	dir := t.TempDir()
	ctx, _ := setupTestContext(t, filepath.Join(dir, "summit.db"))

	// Empty state is not worth a backup.
	ctx.PerformAutomaticBackup()
	if _, err := os.Stat(filepath.Join(dir, "backups")); !os.IsNotExist(err) {
		t.Error("backup written for empty snapshot")
	}

	if _, err := ctx.Store.AddGoal(models.GoalInput{Title: "Ship product"}); err != nil {
		t.Fatal(err)
	}
	ctx.PerformAutomaticBackup()
	backups, err := ctx.Backups().ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("got %d backups, want 1", len(backups))
	}
}

func TestResolveGoal(t *testing.T) {
	ctx, _ := setupTestContext(t, "memory")
	ship, _ := ctx.Store.AddGoal(models.GoalInput{Title: "Ship product"})
	run, _ := ctx.Store.AddGoal(models.GoalInput{Title: "Run a marathon"})

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"exact id", ship.ID, ship.ID},
		{"title", "ship PRODUCT", ship.ID},
		{"id prefix", run.ID[:8], run.ID},
		{"padded", "  Run a marathon ", run.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ctx.ResolveGoal(tt.ref)
			if err != nil {
				t.Fatalf("ResolveGoal(%q) failed: %v", tt.ref, err)
			}
			if g.ID != tt.want {
				t.Errorf("got %s, want %s", g.ID, tt.want)
			}
		})
	}

	for _, ref := range []string{"", "Learn Go", ship.ID[:2]} {
		if _, err := ctx.ResolveGoal(ref); !errors.Is(err, apperrors.ErrGoalNotFound) {
			t.Errorf("ResolveGoal(%q) = %v, want ErrGoalNotFound", ref, err)
		}
	}
}

func TestResolveAmbiguousName(t *testing.T) {
	ctx, _ := setupTestContext(t, "memory")
	a, _ := ctx.Store.AddGoal(models.GoalInput{Title: "Ship product"})
	b, _ := ctx.Store.AddGoal(models.GoalInput{Title: "Ship docs"})
	ctx.Store.AddHabit(a.ID, models.HabitInput{Name: "Write"})
	ctx.Store.AddHabit(b.ID, models.HabitInput{Name: "write"})

	_, err := ctx.ResolveHabit("Write")
	if err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("expected ambiguity error, got %v", err)
	}
}

func TestResolveHabitAndRoutine(t *testing.T) {
	ctx, _ := setupTestContext(t, "memory")
	g, _ := ctx.Store.AddGoal(models.GoalInput{Title: "Ship product"})
	h, _ := ctx.Store.AddHabit(g.ID, models.HabitInput{Name: "Write code"})
	r, _ := ctx.Store.AddRoutine(g.ID, models.RoutineInput{Name: "Morning"})

	if got, err := ctx.ResolveHabit("write code"); err != nil || got.ID != h.ID {
		t.Errorf("ResolveHabit = %v, %v", got.ID, err)
	}
	if got, err := ctx.ResolveRoutine(r.ID); err != nil || got.ID != r.ID {
		t.Errorf("ResolveRoutine = %v, %v", got.ID, err)
	}
	if _, err := ctx.ResolveRoutine("Evening"); !errors.Is(err, apperrors.ErrRoutineNotFound) {
		t.Errorf("missing routine = %v", err)
	}
}

func TestGoalOrFocused(t *testing.T) {
	ctx, _ := setupTestContext(t, "memory")
	if _, err := ctx.GoalOrFocused(""); !errors.Is(err, ErrNoGoal) {
		t.Errorf("no focus = %v, want ErrNoGoal", err)
	}
	g, _ := ctx.Store.AddGoal(models.GoalInput{Title: "Ship product"})
	ctx.Store.SetFocusedGoal(g.ID)
	if got, err := ctx.GoalOrFocused(""); err != nil || got.ID != g.ID {
		t.Errorf("focused = %v, %v", got.ID, err)
	}
	other, _ := ctx.Store.AddGoal(models.GoalInput{Title: "Run"})
	if got, _ := ctx.GoalOrFocused("Run"); got.ID != other.ID {
		t.Error("explicit ref should win over focus")
	}
}

func TestPreselectGoal(t *testing.T) {
	ctx, _ := setupTestContext(t, "memory")
	if id, err := ctx.PreselectGoal(""); err != nil || id != "" {
		t.Errorf("no focus = (%q, %v), want the form to choose", id, err)
	}

	g, _ := ctx.Store.AddGoal(models.GoalInput{Title: "Ship product"})
	if id, err := ctx.PreselectGoal(""); err != nil || id != g.ID {
		t.Errorf("focused = (%q, %v), want %q", id, err, g.ID)
	}

	other, _ := ctx.Store.AddGoal(models.GoalInput{Title: "Run"})
	ctx.Store.SetFocusedGoal("")
	if id, err := ctx.PreselectGoal("run"); err != nil || id != other.ID {
		t.Errorf("explicit ref = (%q, %v), want %q", id, err, other.ID)
	}
	if _, err := ctx.PreselectGoal("Swim"); !errors.Is(err, apperrors.ErrGoalNotFound) {
		t.Errorf("unknown ref = %v, want ErrGoalNotFound", err)
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID = %q", got)
	}
}

func TestOpenSurvivesCorruptJSONStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summit.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	ctx, _ := setupTestContext(t, path)
	if len(ctx.Store.Goals()) != 0 {
		t.Error("corrupt storage should load as empty")
	}
	if _, err := ctx.Store.AddGoal(models.GoalInput{Title: "Ship product"}); err != nil {
		t.Fatal(err)
	}
}
