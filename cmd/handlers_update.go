package cmd

import (
	"AppShelf/internal/catalog"
	"AppShelf/internal/logger"
	"AppShelf/internal/update"
	"AppShelf/internal/version"
	"context"
	"fmt"
	"slices"
	"strings"
)

func handleSelfUpdate(ctx context.Context, group *CommandGroup, state *CmdState) error {
	requested := ""
	if len(group.Args) > 0 {
		requested = group.Args[0]
	}
	if err := update.SelfUpdate(ctx, state.Force, state.Yes, requested); err != nil {
		return fmt.Errorf("app update failed: %w", err)
	}
	return nil
}

func (rt *runtime) handleCheckApps(ctx context.Context) error {
	cat, err := rt.loadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load the catalog: %w", err)
	}

	updates, err := update.CheckAppUpdates(ctx, cat, rt.releases())
	if err != nil {
		logger.Warn(ctx, "Could not save the catalog: %v", err)
	}
	if len(updates) == 0 {
		logger.Notice(ctx, "All installed apps are up to date.")
		return nil
	}
	for _, u := range updates {
		logger.Notice(ctx, "{{_App_}}%s{{|-|}} can be updated from '{{_Version_}}%s{{|-|}}' to '{{_Version_}}%s{{|-|}}'.", u.App.DisplayName(), u.App.Version, u.Latest)
	}
	logger.Notice(ctx, "Run '{{_UserCommand_}}%s --update-apps{{|-|}}' to update them.", version.CommandName)
	return nil
}

// handleUpdateApps reinstalls apps with a newer release. With no arguments
// every installed app is checked, otherwise only the named ones.
func (rt *runtime) handleUpdateApps(ctx context.Context, group *CommandGroup, state *CmdState) error {
	cat, err := rt.loadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load the catalog: %w", err)
	}

	apps := cat.List(catalog.Installed)
	if len(group.Args) > 0 {
		for _, id := range group.Args {
			if _, err := cat.Get(id); err != nil {
				return fmt.Errorf("'{{_App_}}%s{{|-|}}' is not in the catalog", id)
			}
		}
		apps = slices.DeleteFunc(apps, func(a catalog.App) bool {
			return !slices.ContainsFunc(group.Args, func(id string) bool { return strings.EqualFold(id, a.ID) })
		})
	}

	updates := rt.releases().CheckApps(ctx, apps)
	if len(updates) == 0 {
		logger.Notice(ctx, "No app updates available.")
		return nil
	}

	for _, u := range updates {
		logger.Notice(ctx, "{{_App_}}%s{{|-|}} '{{_Version_}}%s{{|-|}}' -> '{{_Version_}}%s{{|-|}}'", u.App.DisplayName(), u.App.Version, u.Latest)
	}
	question := fmt.Sprintf("Would you like to update %d app(s) now?", len(updates))
	if !confirmPrompt(ctx, question, state.Yes) {
		logger.Notice(ctx, "Apps will not be updated.")
		return nil
	}

	ok := update.UpdateApps(ctx, rt.newInstaller(cat), updates)
	if ok < len(updates) {
		return fmt.Errorf("updated %d of %d apps", ok, len(updates))
	}
	logger.Notice(ctx, "Updated %d app(s).", ok)
	return nil
}
