package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/summit/internal/constants"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Timezone != constants.DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, constants.DefaultTimezone)
	}
	if cfg.StreakWindowDays != constants.DefaultStreakWindowDays {
		t.Errorf("StreakWindowDays = %d, want %d", cfg.StreakWindowDays, constants.DefaultStreakWindowDays)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
	if strings.HasPrefix(cfg.Storage.Location, "~") {
		t.Errorf("storage location not expanded: %q", cfg.Storage.Location)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "storage:\n  location: /tmp/goals.json\ntimezone: America/New_York\nstreak_window_days: 14\ndebug: true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Location != "/tmp/goals.json" {
		t.Errorf("Location = %q", cfg.Storage.Location)
	}
	if cfg.Timezone != "America/New_York" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.StreakWindowDays != 14 {
		t.Errorf("StreakWindowDays = %d", cfg.StreakWindowDays)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timezone: UTC\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SUMMIT_TIMEZONE", "Europe/Berlin")
	t.Setenv("SUMMIT_STORAGE_LOCATION", "memory")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q, want env value", cfg.Timezone)
	}
	if cfg.Storage.Location != "memory" {
		t.Errorf("Location = %q, want env value", cfg.Storage.Location)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown timezone", "timezone: Mars/Olympus\n"},
		{"malformed yaml", "storage: [unclosed\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadNormalizesStreakWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("streak_window_days: -4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StreakWindowDays != constants.DefaultStreakWindowDays {
		t.Errorf("StreakWindowDays = %d, want default", cfg.StreakWindowDays)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := &Config{
		Storage:          StorageConfig{Location: "postgres"},
		Timezone:         "UTC",
		StreakWindowDays: 60,
		Debug:            true,
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *got != *want {
		t.Errorf("got %+v, want %+v", *got, *want)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in, want string
	}{
		{"~", home},
		{"~/summit/summit.db", filepath.Join(home, "summit/summit.db")},
		{"/abs/path.db", "/abs/path.db"},
		{"postgres://u@h/db", "postgres://u@h/db"},
		{"memory", "memory"},
		{"~other/x", "~other/x"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDir(t *testing.T) {
	defaultDir := ExpandPath(constants.DefaultConfigDir)
	tests := []struct {
		loc, want string
	}{
		{"/data/summit/summit.db", "/data/summit"},
		{"/data/goals.json", "/data"},
		{"memory", defaultDir},
		{"postgres", defaultDir},
		{"postgres://u@h/db", defaultDir},
	}
	for _, tt := range tests {
		c := &Config{Storage: StorageConfig{Location: tt.loc}}
		if got := c.Dir(); got != tt.want {
			t.Errorf("Dir(%q) = %q, want %q", tt.loc, got, tt.want)
		}
	}
}
