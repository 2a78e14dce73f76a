package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "hybit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/hybit/hybit.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Environment variables
	EnvDBConnection     = "HYBIT_DB_CONNECTION"
	EnvPostgresTestConn = "HYBIT_TEST_POSTGRES"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "hybit-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "hybit-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.gurtech.hybit"
	TrayExecutablePrefix   = "hybit-tray"
	NotifyConcurrency      = 4

	// Widget constants
	WidgetMaxHabits    = 3
	WidgetRefreshAfter = time.Hour

	// Habit constants
	DefaultHabitColor = "#4F8EF7"
	DefaultHabitIcon  = "star.fill"
	MaxHabitNameLen   = 64

	// Profile constants
	MinUsernameLen     = 3
	MaxUsernameLen     = 32
	PhoneDigits        = 10
	PhoneCountryPrefix = "+90"
)

// Session States
const (
	StateHabits SessionState = iota
	StateDetail
	StateAddHabit
	StateConfirmDelete
	StateConfirmPurge
)
