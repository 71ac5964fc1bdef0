package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestEndToEndWorkflow(t *testing.T) {
	// 1. Setup Environment
	// Allow overriding bin dir via env var, default to ../../bin (relative to tests/e2e)
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}

	binDir := os.Getenv("SUMMIT_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)
	t.Logf("Using bin dir: %s", binDir)

	cliPath := filepath.Join(binDir, "summit")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Build it with 'go build -o bin/summit ./cmd/summit'.", cliPath)
	}

	// Create temp home for isolation
	tempDir := t.TempDir()
	t.Logf("Running test in temp dir: %s", tempDir)

	var cleanEnv []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") && !strings.HasPrefix(e, "SUMMIT_") {
			cleanEnv = append(cleanEnv, e)
		}
	}
	cleanEnv = append(cleanEnv,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("SUMMIT_CONFIG=%s", filepath.Join(tempDir, "summit", "config.yaml")),
		fmt.Sprintf("SUMMIT_STORAGE_LOCATION=%s", filepath.Join(tempDir, "summit", "summit.db")),
		"SUMMIT_TIMEZONE=UTC",
	)

	// 2. Initialize CLI
	t.Log("Initializing CLI...")
	out := runCmd(t, cliPath, cleanEnv, "init")
	expectContains(t, out, "Initialized summit storage")

	// 3. Goal becomes focused on creation
	out = runCmd(t, cliPath, cleanEnv, "goal", "add", "Ship product", "--metric", "v1 released")
	expectContains(t, out, "Added goal: Ship product")
	out = runCmd(t, cliPath, cleanEnv, "goal", "focus")
	expectContains(t, out, "Focused goal: Ship product")

	// 4. Frequency above the weekly maximum is clamped
	out = runCmd(t, cliPath, cleanEnv, "habit", "add", "Write code", "--frequency", "10")
	expectContains(t, out, "7x/week")

	// 5. Toggling today moves adherence to 1/7 and back
	runCmd(t, cliPath, cleanEnv, "habit", "mark", "Write code")
	out = runCmd(t, cliPath, cleanEnv, "week")
	expectContains(t, out, "Adherence: 14% (1/7)")

	runCmd(t, cliPath, cleanEnv, "habit", "mark", "Write code")
	out = runCmd(t, cliPath, cleanEnv, "week")
	expectContains(t, out, "Adherence: 0% (0/7)")

	// 6. Routines keep their step order
	runCmd(t, cliPath, cleanEnv, "routine", "add", "Release", "--step", "Tag", "--step", " ", "--step", "Publish")
	out = runCmd(t, cliPath, cleanEnv, "routine", "list")
	expectContains(t, out, "1. Tag")
	expectContains(t, out, "2. Publish")

	// 7. Health checks pass on a fresh database
	runCmd(t, cliPath, cleanEnv, "backup", "create")
	out = runCmd(t, cliPath, cleanEnv, "doctor")
	expectContains(t, out, "All diagnostics passed!")

	// 8. Deleting the goal cascades and clears focus
	runCmd(t, cliPath, cleanEnv, "goal", "delete", "Ship product", "--yes")
	out = runCmd(t, cliPath, cleanEnv, "habit", "list", "--all")
	expectContains(t, out, "No habits found")
	out = runCmd(t, cliPath, cleanEnv, "routine", "list", "--all")
	expectContains(t, out, "No routines found")
	out = runCmd(t, cliPath, cleanEnv, "goal", "focus")
	expectContains(t, out, "No goal is focused.")
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func expectContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Errorf("expected output to contain %q, got:\n%s", want, out)
	}
}
