package cmd

import (
	"sync"

	"github.com/spf13/pflag"
)

var (
	flagsOnce sync.Once
	flagSet   *pflag.FlagSet
)

// Flags returns the flag definitions used for argument validation and help.
func Flags() *pflag.FlagSet {
	flagsOnce.Do(func() {
		fs := pflag.NewFlagSet("appshelf", pflag.ContinueOnError)

		// Modifiers
		fs.BoolP("force", "f", false, "Force execution")
		fs.BoolP("verbose", "v", false, "Verbose output")
		fs.BoolP("debug", "x", false, "Debug output")
		fs.BoolP("yes", "y", false, "Assume yes")
		fs.BoolP("help", "h", false, "Show help")

		// Catalog
		fs.BoolP("list", "l", false, "List all apps")
		fs.Bool("list-installed", false, "List installed apps")
		fs.Bool("list-available", false, "List apps that are not installed")
		fs.String("info", "", "Show details of app(s)")
		fs.String("import", "", "Merge apps from a JSON or YAML manifest")

		// App management
		fs.StringP("install", "i", "", "Install app(s)")
		fs.StringP("remove", "r", "", "Uninstall app(s)")
		fs.String("launch", "", "Launch an app")
		fs.String("download", "", "Download the package of app(s)")

		// Updates
		fs.Bool("check-apps", false, "Check installed apps for new releases")
		fs.String("update-apps", "", "Update apps with new releases")
		fs.StringP("update", "u", "", "Update AppShelf (can specify version or channel)")
		fs.BoolP("version", "V", false, "Show version")

		// Database
		fs.Bool("db-check", false, "Check for a database update if one is due")
		fs.Bool("db-check-now", false, "Check for a database update now")
		fs.Bool("db-status", false, "Show the database update status")
		fs.Bool("db-restore", false, "Restore the database from its backup")
		fs.Bool("daemon", false, "Run scheduled database checks until interrupted")

		// Settings / configuration
		fs.Bool("settings-show", false, "Show settings")
		fs.String("settings-set", "", "Set setting(s) as key=value")
		fs.Bool("config-show", false, "Show configuration")

		flagSet = fs
	})
	return flagSet
}
