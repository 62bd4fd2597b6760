package cmd

import (
	"AppShelf/internal/logger"
	"context"
	"fmt"
	"strings"
)

// failedApps formats ids for an error message.
func failedApps(action string, ids []string) error {
	return fmt.Errorf("failed to %s: {{_App_}}%s{{|-|}}", action, strings.Join(ids, "{{|-|}}, {{_App_}}"))
}

func (rt *runtime) handleInstall(ctx context.Context, group *CommandGroup) error {
	cat, err := rt.loadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load the catalog: %w", err)
	}
	in := rt.newInstaller(cat)

	var failed []string
	for _, id := range group.Args {
		if !in.Install(ctx, id) {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failedApps("install", failed)
	}
	return nil
}

func (rt *runtime) handleRemove(ctx context.Context, group *CommandGroup, state *CmdState) error {
	cat, err := rt.loadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load the catalog: %w", err)
	}
	in := rt.newInstaller(cat)

	var failed []string
	for _, id := range group.Args {
		question := fmt.Sprintf("Would you like to remove {{_App_}}%s{{|-|}}?", id)
		if app, err := cat.Get(id); err == nil {
			question = fmt.Sprintf("Would you like to remove {{_App_}}%s{{|-|}}?", app.DisplayName())
		}
		if !confirmPrompt(ctx, question, state.Yes) {
			logger.Notice(ctx, "Skipping {{_App_}}%s{{|-|}}.", id)
			continue
		}
		if !in.Uninstall(ctx, id) {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failedApps("remove", failed)
	}
	return nil
}

func (rt *runtime) handleLaunch(ctx context.Context, group *CommandGroup) error {
	cat, err := rt.loadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load the catalog: %w", err)
	}
	if !rt.newInstaller(cat).Launch(ctx, group.Args[0]) {
		return failedApps("launch", group.Args[:1])
	}
	return nil
}

func (rt *runtime) handleDownload(ctx context.Context, group *CommandGroup) error {
	cat, err := rt.loadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load the catalog: %w", err)
	}
	in := rt.newInstaller(cat)

	var failed []string
	for _, id := range group.Args {
		path, err := in.Download(ctx, id)
		if err != nil {
			logger.Error(ctx, "Failed to download {{_App_}}%s{{|-|}}: %v", id, err)
			failed = append(failed, id)
			continue
		}
		logger.Display(ctx, "{{_File_}}%s{{|-|}}", path)
	}
	if len(failed) > 0 {
		return failedApps("download", failed)
	}
	return nil
}
