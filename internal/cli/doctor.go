package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/summit/internal/keyring"
	"github.com/julianstephens/summit/internal/storage"
	"github.com/julianstephens/summit/internal/utils"
	"github.com/julianstephens/summit/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(*Context) error
	warning bool // failures are reported but do not fail the run
	needsDB bool
}

var doctorChecks = []check{
	{name: "Storage reachable", run: checkStorageReachable},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Snapshot integrity", run: checkSnapshotIntegrity, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warning: true},
	{name: "Keyring", run: checkKeyring, warning: true},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false
	for i, c := range doctorChecks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
			if i == 0 {
				dbReachable = true
			}
		case c.warning:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	if _, err := ctx.KV.Get(ctx.Adapter.Key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to read snapshot slot: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	reporter, ok := ctx.KV.(storage.SchemaReporter)
	if !ok {
		// File and memory backends carry no schema.
		return nil
	}
	current, latest, err := reporter.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

// checkSnapshotIntegrity inspects the stored payload as written, before the
// repairs applied on load.
func checkSnapshotIntegrity(ctx *Context) error {
	data, err := ctx.KV.Get(ctx.Adapter.Key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	snap, err := storage.DecodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("stored snapshot is unreadable and will be ignored: %w", err)
	}
	result := validation.CheckSnapshot(snap)
	if result.HasConflicts() {
		return errors.New(strings.TrimSpace(result.FormatReport()))
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := ctx.Backups()
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'summit backup create'")
	}
	return nil
}

func checkKeyring(ctx *Context) error {
	if ctx.Config.Storage.Location != storage.LocationPostgres {
		return nil
	}
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now, err := utils.NowInTimezone(ctx.Config.Timezone)
	if err != nil {
		return err
	}
	if now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}
