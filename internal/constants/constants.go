package constants

// Folder Names
const (
	DownloadsDirName = "downloads"
)

// File Names
const (
	AppConfigFileName     = "appshelf.toml"
	LogFileName           = "appshelf.log"
	LocalDatabaseFileName = "app.db"
	StagingFileName       = "server_app.db"
	BackupSuffix          = ".backup"
	LastCheckFileName     = "last_update_check.json"
	SettingsFileName      = "settings.json"
	CatalogFileName       = "apps_metadata.json"
	UpdateLockFileName    = "update.lock"
)

// Settings Keys
const (
	UpdateCheckerKey       = "update_checker"
	UpdateIntervalHoursKey = "update_interval_hours"
	ThemeKey               = "theme"
)

// Defaults
const (
	DefaultRemoteURL           = "https://www.example.com/app-data/api=1"
	DefaultUpdateIntervalHours = 24
	DefaultFetchTimeout        = "30s"
	DefaultCommandTimeout      = "30m"
	DefaultSchedule            = "@every 1h"
)
