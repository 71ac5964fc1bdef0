// Package cli holds the state shared by every command: configuration, the
// storage backend and the domain store seeded from it.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/summit/internal/backup"
	"github.com/julianstephens/summit/internal/config"
	"github.com/julianstephens/summit/internal/logger"
	"github.com/julianstephens/summit/internal/models"
	"github.com/julianstephens/summit/internal/storage"
	"github.com/julianstephens/summit/internal/store"
	"github.com/julianstephens/summit/internal/utils"
)

type Context struct {
	Config     *config.Config
	ConfigFile string
	Location   *time.Location
	Clock      func() time.Time
	Out        io.Writer

	KV      storage.KV
	Adapter *storage.Adapter
	Store   *store.Store

	stopSave func()
}

// New prepares a context for cfg. Storage is not touched until Open.
func New(cfg *config.Config, configFile string) (*Context, error) {
	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return &Context{
		Config:     cfg,
		ConfigFile: configFile,
		Location:   loc,
		Clock:      utils.ClockIn(loc),
		Out:        os.Stdout,
	}, nil
}

// Open connects to the configured backend, creating it on first use, and
// seeds the store from the persisted snapshot. Opening twice is a no-op.
func (c *Context) Open() error {
	if c.Store != nil {
		return nil
	}
	kv, err := storage.Open(c.Config.Storage.Location)
	if err != nil {
		return err
	}
	return c.Attach(kv)
}

// Attach seeds the store from an already loaded backend and starts
// autosaving every mutation to it.
func (c *Context) Attach(kv storage.KV) error {
	if c.stopSave != nil {
		c.stopSave()
	}
	c.KV = kv
	c.Adapter = storage.NewAdapter(kv)

	snap, _ := c.Adapter.LoadSnapshot()
	c.Store = store.New(
		store.WithSnapshot(snap),
		store.WithClock(c.Clock),
	)
	c.stopSave = storage.AutoSave(c.Store, c.Adapter)
	logger.Debug("Store ready", "backend", kv.GetConfigPath(),
		"goals", len(snap.Goals), "habits", len(snap.Habits), "routines", len(snap.Routines))
	return nil
}

// Close stops autosave and releases the backend.
func (c *Context) Close() error {
	if c.stopSave != nil {
		c.stopSave()
		c.stopSave = nil
	}
	if c.KV == nil {
		return nil
	}
	return c.KV.Close()
}

// Now is the current time in the configured timezone.
func (c *Context) Now() time.Time {
	return c.Clock()
}

// Today is the current day key.
func (c *Context) Today() string {
	return utils.DayKey(c.Now())
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Backups returns the backup manager for the configured data directory.
func (c *Context) Backups() *backup.Manager {
	return backup.NewManager(c.Config.Dir())
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if c.Store == nil {
		return
	}
	snap := c.Store.Snapshot()
	if snap.IsEmpty() {
		return
	}
	if _, err := c.Backups().CreateBackup(snap); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Snapshot is shorthand for c.Store.Snapshot.
func (c *Context) Snapshot() models.Snapshot {
	return c.Store.Snapshot()
}
