// Package installer runs the install, uninstall and launch commands of
// catalog apps and downloads their packages.
package installer

import (
	"AppShelf/internal/catalog"
	"AppShelf/internal/exec"
	"AppShelf/internal/logger"
	"context"
	"net/http"
	"time"
)

// DefaultCommandTimeout bounds install and uninstall commands when unset.
const DefaultCommandTimeout = 30 * time.Minute

// Installer acts on the apps of one catalog.
type Installer struct {
	Catalog        *catalog.Catalog
	CommandTimeout time.Duration
	DownloadsDir   string
	HTTPClient     *http.Client
	// NewProgress builds the progress display for downloads; nil disables it.
	NewProgress func(label string, total int64) Progress
}

func (in *Installer) timeout() time.Duration {
	if in.CommandTimeout <= 0 {
		return DefaultCommandTimeout
	}
	return in.CommandTimeout
}

func (in *Installer) lookup(ctx context.Context, id string) (catalog.App, bool) {
	app, err := in.Catalog.Get(id)
	if err != nil {
		logger.Error(ctx, "Application '{{_App_}}%s{{|-|}}' is not in the catalog.", id)
		return app, false
	}
	return app, true
}

func (in *Installer) run(ctx context.Context, app catalog.App, cmd catalog.Command, action string) bool {
	ctx, cancel := context.WithTimeout(ctx, in.timeout())
	defer cancel()

	err := exec.RunAndLog(ctx, "notice", app.ID+":info", "error",
		"Failed to "+action+" {{_App_}}"+app.DisplayName()+"{{|-|}}.",
		cmd.Program(), cmd.Args()...)
	return err == nil
}

// Install runs the install command of id and marks it installed on success.
func (in *Installer) Install(ctx context.Context, id string) bool {
	app, ok := in.lookup(ctx, id)
	if !ok {
		return false
	}
	if app.InstallCommand.Empty() {
		logger.Error(ctx, "No install command provided for '{{_App_}}%s{{|-|}}'.", app.ID)
		return false
	}

	logger.Notice(ctx, "Installing {{_App_}}%s{{|-|}}.", app.DisplayName())
	if !in.run(ctx, app, app.InstallCommand, "install") {
		return false
	}

	in.markInstalled(ctx, app.ID, true, "")
	logger.Notice(ctx, "Installed {{_App_}}%s{{|-|}}.", app.DisplayName())
	return true
}

// Reinstall runs the install command again to move id to newVersion.
func (in *Installer) Reinstall(ctx context.Context, id, newVersion string) bool {
	app, ok := in.lookup(ctx, id)
	if !ok {
		return false
	}
	if app.InstallCommand.Empty() {
		logger.Error(ctx, "No update command found for '{{_App_}}%s{{|-|}}'.", app.ID)
		return false
	}

	logger.Notice(ctx, "Updating {{_App_}}%s{{|-|}} to '{{_Version_}}%s{{|-|}}'.", app.DisplayName(), newVersion)
	if !in.run(ctx, app, app.InstallCommand, "update") {
		return false
	}

	in.markInstalled(ctx, app.ID, true, newVersion)
	logger.Notice(ctx, "Updated {{_App_}}%s{{|-|}}.", app.DisplayName())
	return true
}

// Uninstall runs the uninstall command of id and clears its installed flag.
func (in *Installer) Uninstall(ctx context.Context, id string) bool {
	app, ok := in.lookup(ctx, id)
	if !ok {
		return false
	}
	if app.UninstallCommand.Empty() {
		logger.Error(ctx, "No uninstall command provided for '{{_App_}}%s{{|-|}}'.", app.ID)
		return false
	}

	logger.Notice(ctx, "Removing {{_App_}}%s{{|-|}}.", app.DisplayName())
	if !in.run(ctx, app, app.UninstallCommand, "remove") {
		return false
	}

	in.markInstalled(ctx, app.ID, false, "")
	logger.Notice(ctx, "Removed {{_App_}}%s{{|-|}}.", app.DisplayName())
	return true
}

// Launch starts the launch command of id without waiting for it.
func (in *Installer) Launch(ctx context.Context, id string) bool {
	app, ok := in.lookup(ctx, id)
	if !ok {
		return false
	}
	if app.LaunchCommand.Empty() {
		logger.Error(ctx, "No launch command provided for '{{_App_}}%s{{|-|}}'.", app.ID)
		return false
	}

	if _, err := exec.Start(ctx, app.LaunchCommand.Program(), app.LaunchCommand.Args()...); err != nil {
		logger.Error(ctx, "Failed to launch {{_App_}}%s{{|-|}}: %v", app.DisplayName(), err)
		return false
	}
	logger.Notice(ctx, "Launched {{_App_}}%s{{|-|}}.", app.DisplayName())
	return true
}

func (in *Installer) markInstalled(ctx context.Context, id string, installed bool, newVersion string) {
	_, err := in.Catalog.Update(id, func(a *catalog.App) {
		a.Installed = installed
		if newVersion != "" {
			a.Version = newVersion
			a.LatestVersion = ""
		}
	})
	if err != nil {
		logger.Warn(ctx, "Could not save the catalog: %v", err)
	}
}
