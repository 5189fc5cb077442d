package constants

const (
	// Config keys (YAML)
	SettingStorage        = "storage"
	SettingTimezone       = "timezone"
	SettingDebug          = "debug"
	SettingBackupsEnabled = "backups.enabled"

	// Environment overrides
	EnvConfig   = "HABITUAL_CONFIG"
	EnvStorage  = "HABITUAL_STORAGE"
	EnvTimezone = "HABITUAL_TIMEZONE"
	EnvDebug    = "HABITUAL_DEBUG"

	// KeyringStorage makes the storage target resolve through the OS keyring
	KeyringStorage = "keyring"

	// Default Settings Values
	DefaultTimezone       = "Local" // Use system local timezone by default
	DefaultBackupsEnabled = true
)
