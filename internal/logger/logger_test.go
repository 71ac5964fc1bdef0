package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Dir(LogPath(configDir))
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")

	if _, err := os.Stat(LogPath(configDir)); err != nil {
		t.Errorf("expected log file to exist after writing: %v", err)
	}
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", Logger.GetLevel())
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	prev := Logger
	Logger = nil
	defer func() { Logger = prev }()

	Debug("dropped")
	Info("dropped")
	Warn("dropped")
	Error("dropped")
}

func TestUseWriter(t *testing.T) {
	prev := Logger
	defer func() { Logger = prev }()

	var buf bytes.Buffer
	UseWriter(&buf, log.WarnLevel)

	Info("should not appear")
	Warn("persist failed", "key", "summit:v1")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("info message written below warn level: %q", out)
	}
	if !strings.Contains(out, "persist failed") || !strings.Contains(out, "summit:v1") {
		t.Errorf("expected warning with keyvals, got %q", out)
	}
}
