// Package backup writes timestamped JSON copies of the snapshot and brings
// them back.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/summit/internal/constants"
	"github.com/julianstephens/summit/internal/logger"
	"github.com/julianstephens/summit/internal/models"
	"github.com/julianstephens/summit/internal/storage"
	"github.com/julianstephens/summit/internal/validation"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations
type Manager struct {
	backupDir string
	keep      int
	now       func() time.Time
}

// NewManager keeps backups in <configDir>/backups.
func NewManager(configDir string) *Manager {
	return &Manager{
		backupDir: filepath.Join(configDir, constants.BackupDirName),
		keep:      constants.MaxBackups,
		now:       time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup writes snap to a new backup file and prunes the oldest files
// beyond the retention limit.
func (m *Manager) CreateBackup(snap models.Snapshot) (string, error) {
	return m.createBackup(snap, false)
}

func (m *Manager) createBackup(snap models.Snapshot, skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.nextPath()
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return path, nil
}

// nextPath names a backup after the current minute, falling back to seconds
// and then a counter when that name is taken.
func (m *Manager) nextPath() (string, error) {
	now := m.now()
	candidate := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	}

	path := candidate(now.Format(minuteLayout))
	if !exists(path) {
		return path, nil
	}
	stamp := now.Format(secondLayout)
	path = candidate(stamp)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = candidate(fmt.Sprintf("%s-%d", stamp, counter))
	}
	return path, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ListBackups returns a list of all available backups, sorted by timestamp (newest first)
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseBackupName extracts the timestamp from summit-YYYYMMDD-HHMM[SS][-N].json.
func parseBackupName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	// Strip a collision counter: the third dash-separated part.
	if parts := strings.Split(stamp, "-"); len(parts) == 3 {
		stamp = parts[0] + "-" + parts[1]
	}

	for _, layout := range []string{minuteLayout, secondLayout} {
		if ts, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := m.keep; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// LoadBackup decodes a backup file with the same leniency as the live slot.
func (m *Manager) LoadBackup(path string) (models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read backup: %w", err)
	}
	snap, err := storage.DecodeSnapshot(data)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	clean, fixes := validation.Sanitize(snap)
	for _, fix := range fixes {
		logger.Warn("Repaired backup data", "path", path, "action", fix.Action)
	}
	return clean, nil
}

// RestoreBackup loads the backup at path after saving current to a fresh
// backup, so a restore can itself be undone. It returns the restored
// snapshot and the path of the safety copy.
func (m *Manager) RestoreBackup(path string, current models.Snapshot) (models.Snapshot, string, error) {
	restored, err := m.LoadBackup(path)
	if err != nil {
		return models.Snapshot{}, "", err
	}

	safety := ""
	if !current.IsEmpty() {
		if safety, err = m.createBackup(current, true); err != nil {
			return models.Snapshot{}, "", fmt.Errorf("failed to back up current data before restore: %w", err)
		}
	}
	return restored, safety, nil
}

// Resolve accepts either a path or a bare backup file name from ListBackups.
func (m *Manager) Resolve(nameOrPath string) string {
	if filepath.Base(nameOrPath) == nameOrPath {
		return filepath.Join(m.backupDir, nameOrPath)
	}
	return nameOrPath
}
