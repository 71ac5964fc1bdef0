package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/summit/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	backupPath, err := ctx.Backups().CreateBackup(ctx.Snapshot())
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := ctx.Backups()
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		ctx.Printf("  %s  %s  (%.1f KB)\n", timestamp, filepath.Base(b.Path), sizeKB)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	mgr := ctx.Backups()
	backupPath := mgr.Resolve(c.BackupFile)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file not found: %s", backupPath)
	}

	if !c.Yes {
		ctx.Println("⚠️  WARNING: This will replace your current goals, habits and routines with the backup.")
		ctx.Println("A backup of your current data will be created before restoring.")
		ok, err := confirm(fmt.Sprintf("Restore from %s?", filepath.Base(backupPath)))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	restored, safety, err := mgr.RestoreBackup(backupPath, ctx.Snapshot())
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	ctx.Store.Replace(restored)

	if safety != "" {
		ctx.Printf("Previous data saved to: %s\n", filepath.Base(safety))
	}
	ctx.Printf("✓ Restored %d goals, %d habits, %d routines.\n",
		len(restored.Goals), len(restored.Habits), len(restored.Routines))
	return nil
}
