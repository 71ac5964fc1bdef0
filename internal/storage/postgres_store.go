package storage

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	pq "github.com/lib/pq"

	"github.com/julianstephens/summit/internal/constants"
	"github.com/julianstephens/summit/internal/keyring"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
	ErrNoConnectionString      = errors.New("no PostgreSQL connection string configured")
)

// PostgresStore keeps slots in the kv_slots table of the summit schema.
type PostgresStore struct {
	connStr string
	slotTable
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr:   withSearchPath(connStr),
		slotTable: slotTable{dialect: "postgres"},
	}
}

// ResolveConnString picks the connection string from, in order, the explicit
// value, the SUMMIT_DB_CONNECTION environment variable and the OS keyring.
func ResolveConnString(explicit string) (string, error) {
	if s := strings.TrimSpace(explicit); s != "" {
		return s, nil
	}
	if s := strings.TrimSpace(os.Getenv(constants.EnvConnectionString)); s != "" {
		return s, nil
	}
	s, err := keyring.GetConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoConnectionString
	}
	if err != nil {
		return "", err
	}
	return s, nil
}

// IsPostgresURL reports whether location names a Postgres server.
func IsPostgresURL(location string) bool {
	return strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

// withSearchPath points unqualified table names at the app schema unless the
// caller already chose one.
func withSearchPath(connStr string) string {
	if IsPostgresURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return connStr
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
		}
		return u.String()
	}
	if connStr == "" || hasDSNParam(connStr, "search_path") {
		return connStr
	}
	return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
}

// hasDSNParam reports whether a key=value DSN contains key (case-insensitive).
func hasDSNParam(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		k, _, ok := strings.Cut(part, "=")
		if ok && strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return hasDSNParam(connStr, "sslmode")
}

// ValidateConnString checks that connStr parses as a URI or DSN and carries
// no password. Passwords belong in ~/.pgpass or the server's auth config.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	if IsPostgresURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := u.User.Password(); isSet {
			return ErrEmbeddedCredentials
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return nil
	}
	if hasDSNParam(connStr, "password") {
		return ErrEmbeddedCredentials
	}
	return nil
}

// Init connects, creates the schema and applies pending migrations.
func (s *PostgresStore) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Load connects and checks the schema version. A server that was never
// initialized reports ErrNotInitialized.
func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}
	current, _, err := s.schemaStatus()
	if err != nil {
		return err
	}
	if current == 0 {
		return ErrNotInitialized
	}
	return s.validateSchema()
}

func (s *PostgresStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sqlx.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db
	return nil
}

func (s *PostgresStore) Close() error {
	return s.close()
}

func (s *PostgresStore) Get(key string) ([]byte, error) {
	return s.get(key)
}

func (s *PostgresStore) Set(key string, value []byte) error {
	return s.set(key, value)
}

func (s *PostgresStore) SchemaStatus() (int, int, error) {
	return s.schemaStatus()
}

// GetConfigPath returns a label rather than the connection string.
func (s *PostgresStore) GetConfigPath() string {
	return "postgresql"
}
