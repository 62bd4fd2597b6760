package config

import (
	"AppShelf/internal/constants"
	"AppShelf/internal/paths"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// AppConfig holds the application configuration settings.
type AppConfig struct {
	UI      UIConfig      `toml:"ui"`
	Paths   PathConfig    `toml:"paths"`
	Update  UpdateConfig  `toml:"update"`
	Install InstallConfig `toml:"install"`

	// Runtime only, not saved to TOML
	DataDir string `toml:"-"`
}

// UIConfig holds user interface related settings.
type UIConfig struct {
	LineCharacters bool `toml:"line_characters"`
}

// PathConfig holds directory path settings.
type PathConfig struct {
	DataFolder string `toml:"data_folder"`
}

// UpdateConfig holds the database update settings.
type UpdateConfig struct {
	RemoteURL    string `toml:"remote_url"`
	FetchTimeout string `toml:"fetch_timeout"`
	Schedule     string `toml:"schedule"`
}

// InstallConfig holds installer settings.
type InstallConfig struct {
	CommandTimeout string `toml:"command_timeout"`
}

// Default returns the configuration used when no file exists.
func Default() AppConfig {
	return AppConfig{
		UI: UIConfig{
			LineCharacters: true,
		},
		Paths: PathConfig{
			DataFolder: "${XDG_DATA_HOME}/appshelf",
		},
		Update: UpdateConfig{
			RemoteURL:    constants.DefaultRemoteURL,
			FetchTimeout: constants.DefaultFetchTimeout,
			Schedule:     constants.DefaultSchedule,
		},
		Install: InstallConfig{
			CommandTimeout: constants.DefaultCommandTimeout,
		},
	}
}

// ExpandVariables expands environment variables in the config values.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_DATA_HOME}   -> xdg.DataHome
// - ${XDG_STATE_HOME}  -> xdg.StateHome
// - ${XDG_CACHE_HOME}  -> xdg.CacheHome
// - ${HOME}            -> os.UserHomeDir()
// - ${USER}            -> Current username
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			return xdg.ConfigHome
		case "XDG_DATA_HOME":
			return xdg.DataHome
		case "XDG_STATE_HOME":
			return xdg.StateHome
		case "XDG_CACHE_HOME":
			return xdg.CacheHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		case "USER":
			u, err := user.Current()
			if err != nil {
				return os.Getenv("USERNAME") // Fallback for Windows
			}
			return u.Username
		}
		return os.Getenv(varName)
	}
	return os.Expand(val, mapper)
}

// FetchTimeout returns the parsed fetch timeout, falling back to the default.
func (c AppConfig) FetchTimeout() time.Duration {
	return parseDuration(c.Update.FetchTimeout, constants.DefaultFetchTimeout)
}

// CommandTimeout returns the parsed install/uninstall command timeout.
func (c AppConfig) CommandTimeout() time.Duration {
	return parseDuration(c.Install.CommandTimeout, constants.DefaultCommandTimeout)
}

func parseDuration(val, fallback string) time.Duration {
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

// LoadAppConfig reads the configuration file and returns the configuration.
// Missing or invalid files yield the defaults, which are then written back.
func LoadAppConfig() AppConfig {
	conf := Default()

	path := paths.GetConfigFilePath()
	data, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(data, &conf); err == nil {
			conf.fillMissing()
			conf.DataDir = ExpandVariables(conf.Paths.DataFolder)
			return conf
		}
		conf = Default()
	}

	conf.DataDir = ExpandVariables(conf.Paths.DataFolder)
	_ = SaveAppConfig(conf)
	return conf
}

func (c *AppConfig) fillMissing() {
	def := Default()
	if c.Paths.DataFolder == "" {
		c.Paths.DataFolder = def.Paths.DataFolder
	}
	if c.Update.RemoteURL == "" {
		c.Update.RemoteURL = def.Update.RemoteURL
	}
	if c.Update.FetchTimeout == "" {
		c.Update.FetchTimeout = def.Update.FetchTimeout
	}
	if c.Update.Schedule == "" {
		c.Update.Schedule = def.Update.Schedule
	}
	if c.Install.CommandTimeout == "" {
		c.Install.CommandTimeout = def.Install.CommandTimeout
	}
}

// SaveAppConfig writes the configuration to appshelf.toml.
func SaveAppConfig(conf AppConfig) error {
	path := paths.GetConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(conf)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
