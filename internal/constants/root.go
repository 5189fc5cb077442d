package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "habitual"
	DefaultKeyringUser = "storage-connection"
	DefaultConfigDir   = "~/.config/habitual"
	DefaultStoragePath = "~/.config/habitual/habitual.db"
	DefaultConfigFile  = "~/.config/habitual/config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is used by the calendar views (YYYY-MM)
	MonthFormat = "2006-01"

	// DisplayDateFormat matches the "Started" label of the list view
	DisplayDateFormat = "Jan 2, 2006"

	// HabitsSlot is the key-value slot holding the full habit collection
	HabitsSlot = "habits"

	// Backup constants
	MaxBackups      = 14
	BackupDirName   = "backups"
	BackupNameInfix = "-"
)

// Session States
const (
	StateHabits SessionState = iota
	StateCalendar
	StateStats
	StateAddHabit
	StateEditHabit
	StateConfirmDelete
)

// Tab titles in display order; index matches the first three session states.
var TabTitles = []string{"Habits", "Calendar", "Stats"}
