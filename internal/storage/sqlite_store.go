package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const memoryDSN = ":memory:"

// SQLiteStore keeps slots in the kv_slots table of a local SQLite file.
type SQLiteStore struct {
	path string
	slotTable
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path, slotTable: slotTable{dialect: "sqlite"}}
}

// Init creates the database if needed and applies pending migrations.
func (s *SQLiteStore) Init() error {
	if s.path != memoryDSN {
		if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := s.open(); err != nil {
		return err
	}
	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Load opens an existing database and checks its schema version. A
// database that was never migrated yet (an older empty file) is migrated.
func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	if s.path != memoryDSN {
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			return ErrNotInitialized
		}
	}
	if err := s.open(); err != nil {
		return err
	}
	current, _, err := s.schemaStatus()
	if err != nil {
		return err
	}
	if current == 0 {
		return s.migrate()
	}
	return s.validateSchema()
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sqlx.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// One writer; also keeps :memory: on a single shared connection.
	db.SetMaxOpenConns(1)

	if s.path != memoryDSN {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.close()
}

func (s *SQLiteStore) Get(key string) ([]byte, error) {
	return s.get(key)
}

func (s *SQLiteStore) Set(key string, value []byte) error {
	return s.set(key, value)
}

func (s *SQLiteStore) SchemaStatus() (int, int, error) {
	return s.schemaStatus()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
