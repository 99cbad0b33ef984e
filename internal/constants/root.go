package constants

const (
	AppName           = "archiver"
	Version           = "v0.1.0"
	DefaultConfigPath = "~/.config/archiver/archiver.db"

	// DateFormat is the canonical day format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the clock format used when rendering entry times (HH:MM)
	TimeFormat = "15:04"

	// TimestampFormat is the fixed-width UTC layout for stored timestamps.
	// Fixed width keeps lexical and chronological order identical.
	TimestampFormat = "2006-01-02T15:04:05.000000000Z"

	// Environment overrides
	EnvConfig    = "ARCHIVER_CONFIG"
	EnvSchemaDir = "ARCHIVER_SCHEMA_DIR"
	EnvDebug     = "ARCHIVER_DEBUG"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "archiver-"
	BackupFileSuffix = ".db"

	// Logging
	LogDirName    = "logs"
	LogFileName   = "archiver.log"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// SQLite driver settings
	SQLiteDriver        = "sqlite"
	SQLiteBusyTimeoutMs = 5000
)
