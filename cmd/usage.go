package cmd

import (
	"AppShelf/internal/console"
	"AppShelf/internal/constants"
	"AppShelf/internal/version"
	"fmt"
	"slices"
	"strings"
)

// PrintHelp prints usage information.
// If target is empty, prints global usage.
// If target is specified, prints usage for that specific flag/command.
func PrintHelp(target string) {
	fmt.Fprintln(stdout, console.Parse(GetUsage(target)))
}

// GetUsage returns usage information as a string.
// If target is empty, returns global usage.
// If target is specified, returns usage for that specific flag/command.
func GetUsage(target string) string {
	var sb strings.Builder
	printStr := func(s string) {
		sb.WriteString(s + "\n")
	}

	appName := version.ApplicationName
	appCmd := version.CommandName

	if target == "" {
		printStr(fmt.Sprintf("Usage: {{_UsageCommand_}}%s{{|-|}} [{{_UsageCommand_}}<Flags>{{|-|}}] [{{_UsageCommand_}}<Command>{{|-|}}] ...", appCmd))
		printStr("")
		printStr(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", appName, version.Version))
		printStr(fmt.Sprintf("This is the main {{_ApplicationName_}}%s{{|-|}} command.", appName))
		printStr("Run without options to check for a database update and list the catalog.")
		printStr("")
		printStr("You may include multiple commands on the command-line, and they will be executed in")
		printStr("the order given, only stopping on an error. Any flags included only apply to the")
		printStr("following command, and get reset before the next command.")
		printStr("")
		printStr("Flags:")
		printStr("")
	}

	showAll := target == ""
	match := func(opts ...string) bool {
		return showAll || slices.Contains(opts, target)
	}

	// Flags
	if match("-f", "--force") {
		printStr("{{_UsageCommand_}}-f --force{{|-|}}")
		printStr("	Force actions to run even if they would not be needed.")
	}
	if match("-v", "--verbose") {
		printStr("{{_UsageCommand_}}-v --verbose{{|-|}}")
		printStr("	Verbose")
	}
	if match("-x", "--debug") {
		printStr("{{_UsageCommand_}}-x --debug{{|-|}}")
		printStr("	Debug")
	}
	if match("-y", "--yes") {
		printStr("{{_UsageCommand_}}-y --yes{{|-|}}")
		printStr("	Assume Yes for all prompts")
	}

	if showAll {
		printStr("")
		printStr("Catalog Commands:")
		printStr("")
	}

	if match("-l", "--list", "--list-installed", "--list-available") {
		printStr("{{_UsageCommand_}}-l --list{{|-|}}")
		printStr("	List all apps in the catalog")
		printStr("{{_UsageCommand_}}--list-installed{{|-|}}")
		printStr("	List installed apps")
		printStr("{{_UsageCommand_}}--list-available{{|-|}}")
		printStr("	List apps that are not installed")
	}
	if match("--info") {
		printStr("{{_UsageCommand_}}--info{{|-|}} {{_UsageApp_}}<app>{{|-|}} [{{_UsageApp_}}<app>{{|-|}} ...]")
		printStr("	Show the details of the app(s) specified")
	}
	if match("--import") {
		printStr("{{_UsageCommand_}}--import{{|-|}} {{_UsageFile_}}<file>{{|-|}}")
		printStr("	Merge the apps of a JSON or YAML manifest into the catalog")
	}
	if match("-i", "--install") {
		printStr("{{_UsageCommand_}}-i --install{{|-|}} {{_UsageApp_}}<app>{{|-|}} [{{_UsageApp_}}<app>{{|-|}} ...]")
		printStr("	Run the install command of the app(s) specified")
	}
	if match("-r", "--remove") {
		printStr("{{_UsageCommand_}}-r --remove{{|-|}} {{_UsageApp_}}<app>{{|-|}} [{{_UsageApp_}}<app>{{|-|}} ...]")
		printStr("	Run the uninstall command of the app(s) specified")
	}
	if match("--launch") {
		printStr("{{_UsageCommand_}}--launch{{|-|}} {{_UsageApp_}}<app>{{|-|}}")
		printStr("	Start the app specified")
	}
	if match("--download") {
		printStr("{{_UsageCommand_}}--download{{|-|}} {{_UsageApp_}}<app>{{|-|}} [{{_UsageApp_}}<app>{{|-|}} ...]")
		printStr("	Download the package of the app(s) specified")
	}
	if match("--check-apps") {
		printStr("{{_UsageCommand_}}--check-apps{{|-|}}")
		printStr("	Check installed apps for newer releases")
	}
	if match("--update-apps") {
		printStr("{{_UsageCommand_}}--update-apps{{|-|}} [{{_UsageApp_}}<app>{{|-|}} ...]")
		printStr("	Update installed apps with newer releases, or only the app(s) specified")
	}

	if showAll {
		printStr("")
		printStr("Database Commands:")
		printStr("")
	}

	if match("--db-check") {
		printStr("{{_UsageCommand_}}--db-check{{|-|}}")
		printStr("	Check for a database update if the update checker is enabled and a check is due")
	}
	if match("--db-check-now") {
		printStr("{{_UsageCommand_}}--db-check-now{{|-|}}")
		printStr("	Check for a database update now, ignoring the settings")
	}
	if match("--db-status") {
		printStr("{{_UsageCommand_}}--db-status{{|-|}}")
		printStr("	Show the last check, the next due check and the database files")
	}
	if match("--db-restore") {
		printStr("{{_UsageCommand_}}--db-restore{{|-|}}")
		printStr("	Replace the database with the backup taken by the last update")
	}
	if match("--daemon") {
		printStr("{{_UsageCommand_}}--daemon{{|-|}}")
		printStr("	Keep running and check for database updates on the configured schedule")
	}

	if showAll {
		printStr("")
		printStr("Other Commands:")
		printStr("")
	}

	if match("--settings-show") {
		printStr("{{_UsageCommand_}}--settings-show{{|-|}}")
		printStr(fmt.Sprintf("	Show the settings stored in '{{_UsageFile_}}%s{{|-|}}'", constants.SettingsFileName))
	}
	if match("--settings-set") {
		printStr("{{_UsageCommand_}}--settings-set{{|-|}} {{_UsageOption_}}<key>=<value>{{|-|}} [{{_UsageOption_}}<key>=<value>{{|-|}} ...]")
		printStr("	Change settings, e.g. '{{_UsageOption_}}update_checker=true{{|-|}}'")
	}
	if match("--config-show") {
		printStr("{{_UsageCommand_}}--config-show{{|-|}}")
		printStr("	Show the configuration")
	}
	if match("-u", "--update") {
		printStr("{{_UsageCommand_}}-u --update{{|-|}} [{{_UsageOption_}}<version>{{|-|}}]")
		printStr(fmt.Sprintf("	Update {{_ApplicationName_}}%s{{|-|}} to the latest release, or the version or channel specified", appName))
	}
	if match("-V", "--version") {
		printStr("{{_UsageCommand_}}-V --version{{|-|}}")
		printStr("	Display version information")
	}
	if match("-h", "--help") {
		printStr("{{_UsageCommand_}}-h --help{{|-|}} [{{_UsageCommand_}}<option>{{|-|}}]")
		printStr("	Show this usage information, or the usage of the option specified")
	}

	return strings.TrimRight(sb.String(), "\n")
}
