package cmd

import (
	"AppShelf/internal/config"
	"AppShelf/internal/logger"
	"AppShelf/internal/update"
	"AppShelf/internal/version"
	"context"
	"fmt"
	"strings"
)

// CmdState holds the state of flags for a single command group.
type CmdState struct {
	Force bool
	Yes   bool
}

// Execute runs the logic for a sequence of command groups.
// It handles flag application, command switching, and state resetting.
// Execution stops at the first command that fails and 1 is returned.
func Execute(ctx context.Context, groups []CommandGroup) int {
	rt := newRuntime(config.LoadAppConfig())

	ranCommand := false

	for i, group := range groups {
		state := CmdState{}

		for _, flag := range group.Flags {
			switch flag {
			case "-v", "--verbose":
				logger.SetLevel(logger.LevelInfo)
			case "-x", "--debug":
				logger.SetLevel(logger.LevelDebug)
			case "-f", "--force":
				state.Force = true
			case "-y", "--yes":
				state.Yes = true
			}
		}

		// Trailing modifiers only change how the default action runs
		if group.Command == "" {
			continue
		}

		cmdStr := version.CommandName + " " + strings.Join(group.FullSlice(), " ")
		logger.Notice(ctx, fmt.Sprintf("%s command: '{{_UserCommand_}}%s{{|-|}}'", version.ApplicationName, cmdStr))
		logger.Debug(ctx, fmt.Sprintf("Execution Args -> State: %+v, Command: %v, Rest: %v", state, group.CommandSlice(), Flatten(groups[i+1:])))

		err := rt.dispatch(ctx, &group, &state)
		ranCommand = true

		// Reset Flags
		logger.SetLevel(logger.LevelNotice)

		if err != nil {
			logger.Error(ctx, err.Error())
			return 1
		}
	}

	if !ranCommand {
		if err := rt.runDefault(ctx); err != nil {
			logger.Error(ctx, err.Error())
			return 1
		}
	}

	return 0
}

func (rt *runtime) dispatch(ctx context.Context, group *CommandGroup, state *CmdState) error {
	switch group.Command {
	case "-h", "--help":
		handleHelp(group)
		return nil
	case "-V", "--version":
		handleVersion(ctx)
		return nil
	case "-u", "--update":
		return handleSelfUpdate(ctx, group, state)

	case "-l", "--list", "--list-installed", "--list-available":
		return rt.handleList(ctx, group)
	case "--info":
		return rt.handleInfo(ctx, group)
	case "--import":
		return rt.handleImport(ctx, group)

	case "-i", "--install":
		return rt.handleInstall(ctx, group)
	case "-r", "--remove":
		return rt.handleRemove(ctx, group, state)
	case "--launch":
		return rt.handleLaunch(ctx, group)
	case "--download":
		return rt.handleDownload(ctx, group)

	case "--check-apps":
		return rt.handleCheckApps(ctx)
	case "--update-apps":
		return rt.handleUpdateApps(ctx, group, state)

	case "--db-check":
		return rt.handleDBCheck(ctx, state.Force)
	case "--db-check-now":
		return rt.handleDBCheck(ctx, true)
	case "--db-status":
		return rt.handleDBStatus(ctx)
	case "--db-restore":
		return rt.handleDBRestore(ctx, state)
	case "--daemon":
		return rt.handleDaemon(ctx)

	case "--settings-show":
		return rt.handleSettingsShow(ctx)
	case "--settings-set":
		return rt.handleSettingsSet(ctx, group)
	case "--config-show":
		handleConfigShow(ctx, &rt.conf)
		return nil
	}
	return fmt.Errorf("command '{{_UserCommand_}}%s{{|-|}}' is not implemented", group.Command)
}

// runDefault is what a bare invocation does: a gated database check, the
// AppShelf update notice and the catalog listing.
func (rt *runtime) runDefault(ctx context.Context) error {
	if err := rt.handleDBCheck(ctx, false); err != nil {
		logger.Warn(ctx, err.Error())
	}
	update.CheckUpdates(ctx)
	return rt.handleList(ctx, &CommandGroup{Command: "--list"})
}

func handleHelp(group *CommandGroup) {
	target := ""
	if len(group.Args) > 0 {
		target = group.Args[0]
	}
	PrintHelp(target)
}

func handleVersion(ctx context.Context) {
	logger.Display(ctx, fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", version.ApplicationName, version.Version))
}
