package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/summit/internal/logger"
	"github.com/julianstephens/summit/internal/migration"
	"github.com/julianstephens/summit/migrations"
)

// SchemaReporter is implemented by backends that carry a migrated schema.
type SchemaReporter interface {
	SchemaStatus() (current, latest int, err error)
}

// slotTable holds the kv_slots queries shared by the SQL backends.
// Placeholders are rebound per driver.
type slotTable struct {
	db      *sqlx.DB
	dialect string // migrations sub-directory
}

type slotRow struct {
	Value     string `db:"value"`
	UpdatedAt string `db:"updated_at"`
}

func (t *slotTable) get(key string) ([]byte, error) {
	if t.db == nil {
		return nil, ErrNotLoaded
	}
	var row slotRow
	err := t.db.Get(&row, t.db.Rebind("SELECT value, updated_at FROM kv_slots WHERE key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %q: %w", key, err)
	}
	return []byte(row.Value), nil
}

func (t *slotTable) set(key string, value []byte) error {
	if t.db == nil {
		return ErrNotLoaded
	}
	_, err := t.db.Exec(t.db.Rebind(`
		INSERT INTO kv_slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`), key, string(value), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	return nil
}

func (t *slotTable) runner() (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, t.dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s migrations: %w", t.dialect, err)
	}
	return migration.NewRunner(t.db, sub), nil
}

func (t *slotTable) migrate() error {
	r, err := t.runner()
	if err != nil {
		return err
	}
	_, err = r.ApplyMigrations(func(msg string) {
		logger.Info(msg, "backend", t.dialect)
	})
	return err
}

func (t *slotTable) validateSchema() error {
	r, err := t.runner()
	if err != nil {
		return err
	}
	return r.ValidateVersion()
}

func (t *slotTable) schemaStatus() (int, int, error) {
	if t.db == nil {
		return 0, 0, ErrNotLoaded
	}
	r, err := t.runner()
	if err != nil {
		return 0, 0, err
	}
	return r.Status()
}

func (t *slotTable) close() error {
	if t.db == nil {
		return nil
	}
	err := t.db.Close()
	t.db = nil
	return err
}
