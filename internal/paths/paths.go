package paths

import (
	"AppShelf/internal/constants"
	"AppShelf/internal/version"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
)

var (
	// StateHomeOverride allows overriding the state home for tests.
	StateHomeOverride string
	// ConfigHomeOverride allows overriding the config home for tests.
	ConfigHomeOverride string
)

func appDirName() string {
	return strings.ToLower(version.ApplicationName)
}

// GetConfigFilePath returns the absolute path to the appshelf.toml file.
// It places it in a subdirectory named after the application (e.g., ~/.config/appshelf/appshelf.toml).
func GetConfigFilePath() string {
	if ConfigHomeOverride != "" {
		return filepath.Join(ConfigHomeOverride, appDirName(), constants.AppConfigFileName)
	}
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appDirName(), constants.AppConfigFileName)
	}
	return filepath.Join(xdg.ConfigHome, appDirName(), constants.AppConfigFileName)
}

// GetConfigDir returns the absolute path to the appshelf configuration directory.
func GetConfigDir() string {
	return filepath.Dir(GetConfigFilePath())
}

// GetStateDir returns the absolute path to the appshelf state directory.
func GetStateDir() string {
	if StateHomeOverride != "" {
		return StateHomeOverride
	}
	return filepath.Join(xdg.StateHome, appDirName())
}

// GetCacheDir returns the absolute path to the appshelf cache directory.
func GetCacheDir() string {
	return filepath.Join(xdg.CacheHome, appDirName())
}

// GetDownloadsDir returns the directory installer downloads are written to.
func GetDownloadsDir() string {
	return filepath.Join(GetCacheDir(), constants.DownloadsDirName)
}

// GetLogFilePath returns the path of the application log file.
func GetLogFilePath() string {
	return filepath.Join(GetStateDir(), constants.LogFileName)
}

// DataFiles holds the fixed file locations inside a data folder.
type DataFiles struct {
	LocalDatabase string
	Staging       string
	Backup        string
	LastCheck     string
	Settings      string
	Catalog       string
	UpdateLock    string
}

// GetDataFiles returns the fixed data file locations rooted at dataDir.
func GetDataFiles(dataDir string) DataFiles {
	local := filepath.Join(dataDir, constants.LocalDatabaseFileName)
	return DataFiles{
		LocalDatabase: local,
		Staging:       filepath.Join(dataDir, constants.StagingFileName),
		Backup:        local + constants.BackupSuffix,
		LastCheck:     filepath.Join(dataDir, constants.LastCheckFileName),
		Settings:      filepath.Join(dataDir, constants.SettingsFileName),
		Catalog:       filepath.Join(dataDir, constants.CatalogFileName),
		UpdateLock:    filepath.Join(dataDir, constants.UpdateLockFileName),
	}
}

// GetExecDirectory returns the directory of the currently running executable.
func GetExecDirectory() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
