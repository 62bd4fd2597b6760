package cmd

import (
	"AppShelf/internal/catalog"
	"AppShelf/internal/console"
	"AppShelf/internal/logger"
	"AppShelf/internal/strutil"
	"AppShelf/internal/version"
	"context"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// descriptionWidth bounds the description column of app listings.
const descriptionWidth = 48

func (rt *runtime) handleList(ctx context.Context, group *CommandGroup) error {
	cat, err := rt.loadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load the catalog: %w", err)
	}

	filter := catalog.All
	switch group.Command {
	case "--list-installed":
		filter = catalog.Installed
	case "--list-available":
		filter = catalog.Available
	}

	apps := cat.List(filter)
	if len(apps) == 0 {
		if len(cat.Apps) == 0 {
			logger.Notice(ctx, "The catalog is empty. Run '{{_UserCommand_}}%s --import <file>{{|-|}}' to add apps.", version.CommandName)
		} else {
			logger.Notice(ctx, "No matching apps.")
		}
		return nil
	}

	headers := []string{
		"{{_UsageCommand_}}App{{|-|}}",
		"{{_UsageCommand_}}Name{{|-|}}",
		"{{_UsageCommand_}}Description{{|-|}}",
		"{{_UsageCommand_}}Version{{|-|}}",
		"{{_UsageCommand_}}Installed{{|-|}}",
	}
	var data []string
	for _, app := range apps {
		ver := app.Version
		if app.UpdateAvailable() {
			ver += fmt.Sprintf(" {{_Update_}}(%s available){{|-|}}", app.LatestVersion)
		}
		data = append(data,
			"{{_App_}}"+app.ID+"{{|-|}}",
			app.DisplayName(),
			strutil.Truncate(app.Description, descriptionWidth),
			"{{_Version_}}"+ver+"{{|-|}}",
			yesNo(app.Installed),
		)
	}
	printTable(headers, data, rt.conf.UI.LineCharacters)
	return nil
}

func (rt *runtime) handleInfo(ctx context.Context, group *CommandGroup) error {
	cat, err := rt.loadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load the catalog: %w", err)
	}

	var missing []string
	for _, id := range group.Args {
		app, err := cat.Get(id)
		if err != nil {
			missing = append(missing, id)
			continue
		}
		lipgloss.Fprintln(stdout, appCard(app, rt.conf.UI.LineCharacters))
	}
	if len(missing) > 0 {
		return fmt.Errorf("not in the catalog: {{_App_}}%s{{|-|}}", strings.Join(missing, "{{|-|}}, {{_App_}}"))
	}
	return nil
}

// appCard renders the details of app inside a border.
func appCard(app catalog.App, lineChars bool) string {
	border := lipgloss.ASCIIBorder()
	if lineChars {
		border = lipgloss.RoundedBorder()
	}

	label := lipgloss.NewStyle().Bold(true).Width(12)
	rows := []string{
		console.ToANSI("{{_ApplicationName_}}" + app.DisplayName() + "{{|-|}}"),
		"",
	}
	add := func(name, value string) {
		if value == "" {
			return
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label.Render(name), console.ToANSI(value)))
	}
	add("ID", "{{_App_}}"+app.ID+"{{|-|}}")
	add("Description", app.Description)
	add("Version", app.Version)
	if app.UpdateAvailable() {
		add("Latest", "{{_Update_}}"+app.LatestVersion+"{{|-|}}")
	}
	add("Installed", yesNo(app.Installed))
	add("Install", app.InstallCommand.String())
	add("Uninstall", app.UninstallCommand.String())
	add("Launch", app.LaunchCommand.String())
	add("Releases", app.VersionURL)
	add("Download", app.DownloadURL)

	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (rt *runtime) handleImport(ctx context.Context, group *CommandGroup) error {
	cat, err := rt.loadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load the catalog: %w", err)
	}

	path := group.Args[0]
	res, err := cat.Import(path)
	if err != nil {
		return fmt.Errorf("failed to import '{{_File_}}%s{{|-|}}': %w", path, err)
	}
	logger.Notice(ctx, "Imported '{{_File_}}%s{{|-|}}': %d added, %d updated.", path, res.Added, res.Updated)
	return nil
}
