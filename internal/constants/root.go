package constants

const (
	AppName            = "summit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/summit"
	DefaultStoragePath = "~/.config/summit/summit.db"
	DefaultConfigFile  = "~/.config/summit/config.yaml"
	Version            = "v0.3.0"

	// StorageNamespace is the key the whole snapshot is persisted under.
	// Bump the suffix when the snapshot shape changes incompatibly.
	StorageNamespace = "summit:v1"

	// EnvConnectionString overrides the configured PostgreSQL connection string.
	EnvConnectionString = "SUMMIT_DB_CONNECTION"
	EnvPrefix           = "SUMMIT"

	// DateFormat is the day-key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "summit-"
	BackupFileSuffix = ".json"
)
