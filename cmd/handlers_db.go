package cmd

import (
	"AppShelf/internal/dbupdate"
	"AppShelf/internal/logger"
	"AppShelf/internal/scheduler"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func (rt *runtime) handleDBCheck(ctx context.Context, force bool) error {
	switch outcome := rt.checker(force).Run(ctx); outcome {
	case dbupdate.FetchFailed, dbupdate.DiffFailed, dbupdate.ApplyFailed:
		return fmt.Errorf("database check failed: %s", outcome)
	case dbupdate.Busy:
		logger.Notice(ctx, "Another database check is running.")
	}
	return nil
}

func (rt *runtime) handleDBStatus(ctx context.Context) error {
	st := rt.checker(false).Status(ctx)

	lastCheck := "{{_No_}}never{{|-|}}"
	if st.HasLastCheck {
		lastCheck = st.LastCheck.Local().Format(time.DateTime)
	}
	nextDue := "{{_Yes_}}now{{|-|}}"
	switch {
	case !st.Policy.Enabled:
		nextDue = "{{_No_}}disabled{{|-|}}"
	case !st.Decision.NextDue.IsZero():
		nextDue = st.Decision.NextDue.Local().Format(time.DateTime)
	}
	localHash := ""
	if st.LocalHash != "" {
		localHash = "{{_Var_}}" + st.LocalHash[:12] + "{{|-|}}"
	}

	headers := []string{
		"{{_UsageCommand_}}Item{{|-|}}",
		"{{_UsageCommand_}}Value{{|-|}}",
	}
	data := []string{
		"Update Checker", yesNo(st.Policy.Enabled),
		"Interval", fmt.Sprintf("{{_Var_}}%s{{|-|}}", st.Policy.Interval),
		"Last Check", lastCheck,
		"Next Check", nextDue,
		"Remote", "{{_URL_}}" + rt.conf.Update.RemoteURL + "{{|-|}}",
		"Database", "{{_File_}}" + rt.files.LocalDatabase + "{{|-|}}",
		"Present", yesNo(st.LocalExists),
		"SHA-256", localHash,
		"Backup", yesNo(st.BackupExists),
		"Staged", yesNo(st.StagedExists),
	}
	printTable(headers, data, rt.conf.UI.LineCharacters)
	return nil
}

func (rt *runtime) handleDBRestore(ctx context.Context, state *CmdState) error {
	question := fmt.Sprintf("Would you like to replace '{{_File_}}%s{{|-|}}' with its backup?", rt.files.LocalDatabase)
	if !state.Force && !confirmPrompt(ctx, question, state.Yes) {
		logger.Notice(ctx, "The database will not be restored.")
		return nil
	}
	if err := rt.checker(false).Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore the database: %w", err)
	}
	return nil
}

// handleDaemon runs a gated check immediately and then on every scheduled
// tick until SIGINT or SIGTERM.
func (rt *runtime) handleDaemon(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	checker := rt.checker(false)
	sched, err := scheduler.New(ctx, rt.conf.Update.Schedule, func(ctx context.Context) {
		outcome := checker.Run(ctx)
		logger.Info(ctx, "Scheduled database check: %s.", outcome)
	})
	if err != nil {
		return err
	}

	sched.RunNow()
	if err := sched.Start(); err != nil {
		return err
	}
	logger.Notice(ctx, "Running scheduled database checks ('{{_Var_}}%s{{|-|}}'). Press Ctrl+C to stop.", rt.conf.Update.Schedule)

	<-ctx.Done()
	sched.Stop()
	logger.Notice(ctx, "Stopped.")
	return nil
}
