// Package config loads user settings from a YAML file, overlaid with
// SUMMIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/julianstephens/summit/internal/constants"
	"github.com/julianstephens/summit/internal/utils"
)

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Location is a SQLite path, a *.json path, a postgres:// URL,
	// "postgres" (connection from env or keyring) or "memory".
	Location string `mapstructure:"location" yaml:"location"`
}

// Config is the full set of user settings.
type Config struct {
	Storage          StorageConfig `mapstructure:"storage" yaml:"storage"`
	Timezone         string        `mapstructure:"timezone" yaml:"timezone"`
	StreakWindowDays int           `mapstructure:"streak_window_days" yaml:"streak_window_days"`
	Debug            bool          `mapstructure:"debug" yaml:"debug"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Storage:          StorageConfig{Location: constants.DefaultStoragePath},
		Timezone:         constants.DefaultTimezone,
		StreakWindowDays: constants.DefaultStreakWindowDays,
		Debug:            constants.DefaultDebug,
	}
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	d := Default()
	v.SetDefault(constants.SettingStorageLocation, d.Storage.Location)
	v.SetDefault(constants.SettingTimezone, d.Timezone)
	v.SetDefault(constants.SettingStreakWindowDays, d.StreakWindowDays)
	v.SetDefault(constants.SettingDebug, d.Debug)

	// SUMMIT_STORAGE_LOCATION, SUMMIT_TIMEZONE, ...
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path. A missing file is not an error: the
// defaults (plus environment overrides) are returned instead.
func Load(path string) (*Config, error) {
	path = ExpandPath(path)
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Storage.Location = ExpandPath(strings.TrimSpace(c.Storage.Location))
	if c.Storage.Location == "" {
		c.Storage.Location = ExpandPath(constants.DefaultStoragePath)
	}
	if c.Timezone == "" {
		c.Timezone = constants.DefaultTimezone
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("unknown timezone %q", c.Timezone)
	}
	if c.StreakWindowDays <= 0 {
		c.StreakWindowDays = constants.DefaultStreakWindowDays
	}
	return nil
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(path string, cfg *Config) error {
	path = ExpandPath(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.Set(constants.SettingStorageLocation, cfg.Storage.Location)
	v.Set(constants.SettingTimezone, cfg.Timezone)
	v.Set(constants.SettingStreakWindowDays, cfg.StreakWindowDays)
	v.Set(constants.SettingDebug, cfg.Debug)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// ExpandPath replaces a leading "~" with the user's home directory. URLs
// and keywords pass through untouched.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Dir returns the directory that holds logs and backups for cfg: the
// storage file's directory for file backends, the default config directory
// otherwise.
func (c *Config) Dir() string {
	loc := c.Storage.Location
	if strings.Contains(loc, "://") || !strings.ContainsRune(loc, filepath.Separator) {
		return ExpandPath(constants.DefaultConfigDir)
	}
	return filepath.Dir(loc)
}
