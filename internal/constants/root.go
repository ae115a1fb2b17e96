package constants

import "time"

const (
	AppName            = "momentum"
	Version            = "v0.3.0"
	DefaultConfigPath  = "~/.config/momentum/momentum.db"
	APIKeyEnvVar       = "MOMENTUM_API_KEY"
	GeminiAPIKeyEnvVar = "GEMINI_API_KEY"

	// Keyring users under the AppName service
	KeyringConnectionUser = "database-connection"
	KeyringAPIKeyUser     = "gemini-api-key"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "momentum-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "momentum-notifier.lock"
	NotificationDurationMs = 4000
	TrayAppIdentifier      = "com.julianstephens.momentum"
	TrayExecutablePrefix   = "momentum-tray"

	// Goal limits
	MaxGoalTitleLen       = 120
	MaxGoalDescriptionLen = 1000
	MaxJournalContentLen  = 10000

	// Check-in rating scale (half-star steps)
	MinRating  = 0.5
	MaxRating  = 5.0
	RatingStep = 0.5

	// Default window sizes for history views
	DefaultHistoryDays    = 14
	DefaultJournalDays    = 30
	WeeklySummaryDays     = 7
	ReflectionWindowMonth = 1

	// NotAvailable is shown when an aggregate has no qualifying goal.
	NotAvailable = "N/A"
)

// CoachTimeout bounds a single generative-text request.
const CoachTimeout = 20 * time.Second
