package cmd

import (
	"AppShelf/internal/config"
	"AppShelf/internal/logger"
	"AppShelf/internal/paths"
	"AppShelf/internal/settings"
	"context"
	"fmt"
	"strings"
)

func (rt *runtime) handleSettingsShow(ctx context.Context) error {
	s := rt.loadSettings(ctx)

	headers := []string{
		"{{_UsageCommand_}}Setting{{|-|}}",
		"{{_UsageCommand_}}Value{{|-|}}",
	}
	var data []string
	for _, key := range s.Keys() {
		data = append(data, key, fmt.Sprintf("{{_Var_}}%s{{|-|}}", s.String(key, "")))
	}

	logger.Info(ctx, "Settings stored in '{{_File_}}%s{{|-|}}':", rt.files.Settings)
	printTable(headers, data, rt.conf.UI.LineCharacters)
	return nil
}

// handleSettingsSet applies key=value pairs. Nothing is saved when any
// argument is malformed.
func (rt *runtime) handleSettingsSet(ctx context.Context, group *CommandGroup) error {
	s := rt.loadSettings(ctx)

	for _, arg := range group.Args {
		key, val, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("argument '{{_Var_}}%s{{|-|}}' must be in the form key=value", arg)
		}
		s.Set(key, val)
		logger.Info(ctx, "Set {{_Var_}}%s{{|-|}} to '{{_Var_}}%s{{|-|}}'.", key, s.String(key, ""))
	}

	if err := settings.Save(rt.store, rt.files.Settings, s); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	logger.Notice(ctx, "Settings saved to '{{_File_}}%s{{|-|}}'.", rt.files.Settings)
	return nil
}

func handleConfigShow(ctx context.Context, conf *config.AppConfig) {
	headers := []string{
		"{{_UsageCommand_}}Option{{|-|}}",
		"{{_UsageCommand_}}Value{{|-|}}",
		"{{_UsageCommand_}}Expanded Value{{|-|}}",
	}

	data := []string{
		"Data Folder", "{{_Folder_}}" + conf.Paths.DataFolder + "{{|-|}}", "{{_Folder_}}" + conf.DataDir + "{{|-|}}",
		"Remote URL", "{{_URL_}}" + conf.Update.RemoteURL + "{{|-|}}", "",
		"Fetch Timeout", "{{_Var_}}" + conf.Update.FetchTimeout + "{{|-|}}", fmt.Sprintf("{{_Var_}}%s{{|-|}}", conf.FetchTimeout()),
		"Schedule", "{{_Var_}}" + conf.Update.Schedule + "{{|-|}}", "",
		"Command Timeout", "{{_Var_}}" + conf.Install.CommandTimeout + "{{|-|}}", fmt.Sprintf("{{_Var_}}%s{{|-|}}", conf.CommandTimeout()),
		"Line Characters", yesNo(conf.UI.LineCharacters), "",
	}

	logger.Info(ctx, "Configuration options stored in '{{_File_}}%s{{|-|}}':", paths.GetConfigFilePath())
	printTable(headers, data, conf.UI.LineCharacters)
}
