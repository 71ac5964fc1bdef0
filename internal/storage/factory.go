package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/summit/internal/logger"
)

// Location keywords understood by NewKV besides paths and URLs.
const (
	LocationMemory   = "memory"
	LocationPostgres = "postgres"
)

// NewKV picks a backend from a configured location:
//   - postgres:// or postgresql:// URL: PostgresStore (no password allowed)
//   - "postgres": PostgresStore with the connection string from the
//     environment or the OS keyring
//   - "memory": MemoryStore
//   - *.json: JSONStore
//   - anything else: SQLiteStore at that path
func NewKV(location string) (KV, error) {
	location = strings.TrimSpace(location)

	switch {
	case IsPostgresURL(location):
		if err := ValidateConnString(location); err != nil {
			return nil, err
		}
		return NewPostgresStore(location), nil
	case location == LocationPostgres:
		connStr, err := ResolveConnString("")
		if err != nil {
			return nil, fmt.Errorf("failed to resolve PostgreSQL connection: %w", err)
		}
		if err := ValidateConnString(connStr); err != nil {
			// Passwords are tolerated outside the config file.
			logger.Warn("PostgreSQL connection string failed validation", "error", err)
		}
		return NewPostgresStore(connStr), nil
	case location == LocationMemory:
		return NewMemoryStore(), nil
	case location == "":
		return nil, fmt.Errorf("storage location is empty")
	case strings.HasSuffix(strings.ToLower(location), ".json"):
		return NewJSONStore(location), nil
	default:
		return NewSQLiteStore(location), nil
	}
}

// Open builds the backend for location and loads it, initializing it first
// when it does not exist yet.
func Open(location string) (KV, error) {
	kv, err := NewKV(location)
	if err != nil {
		return nil, err
	}
	if err := kv.Load(); err != nil {
		if !errors.Is(err, ErrNotInitialized) {
			return nil, err
		}
		logger.Info("Initializing storage", "location", kv.GetConfigPath())
		if err := kv.Init(); err != nil {
			return nil, err
		}
	}
	return kv, nil
}
