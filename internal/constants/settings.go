package constants

const (
	// Config keys
	SettingStorageLocation  = "storage.location"
	SettingTimezone         = "timezone"
	SettingStreakWindowDays = "streak_window_days"
	SettingDebug            = "debug"

	// Default config values
	DefaultTimezone = "Local" // Use system local timezone by default
	DefaultDebug    = false
)
