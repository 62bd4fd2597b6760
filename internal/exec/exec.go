package exec

import (
	"AppShelf/internal/logger"
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNoCommand is returned when there is no program to run.
var ErrNoCommand = errors.New("no command given")

// Display joins a command for log output, quoting words with spaces.
func Display(command string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	for _, w := range append([]string{command}, args...) {
		if w == "" || strings.ContainsAny(w, " \t") {
			w = fmt.Sprintf("%q", w)
		}
		parts = append(parts, w)
	}
	return strings.Join(parts, " ")
}

// RunAndLog runs command with args directly (no shell), logs its output line
// by line and reports failures.
//
// Parameters:
//   - runningNoticeType: level for the "Running: ..." line ("notice", "info", ...). Empty to skip.
//   - outputNoticeType: level for the command output, optionally prefixed as "vlc:info". Empty streams to stdout/stderr.
//   - errorNoticeType: level for the failure message. Empty to skip.
//   - errorMessage: message logged on failure
//
// The returned error wraps the process error, including context deadline expiry.
func RunAndLog(ctx context.Context, runningNoticeType, outputNoticeType, errorNoticeType, errorMessage, command string, args ...string) error {
	if command == "" {
		return ErrNoCommand
	}
	cmdText := Display(command, args...)

	if runningNoticeType != "" {
		logByType(ctx, runningNoticeType, "Running: {{_RunningCommand_}}%s{{|-|}}", cmdText)
	}

	cmd := exec.CommandContext(ctx, command, args...)
	var outputBuf bytes.Buffer

	if outputNoticeType != "" {
		cmd.Stdout = &outputBuf
		cmd.Stderr = &outputBuf
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()

	if outputNoticeType != "" && outputBuf.Len() > 0 {
		prefix, noticeType := "", outputNoticeType
		if before, after, ok := strings.Cut(outputNoticeType, ":"); ok {
			prefix, noticeType = before+":", after
		}

		scanner := bufio.NewScanner(&outputBuf)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			if prefix != "" {
				logByType(ctx, noticeType, "{{_RunningCommand_}}%s{{|-|}} %s", prefix, line)
			} else {
				logByType(ctx, noticeType, "%s", line)
			}
		}
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		if errorNoticeType != "" && errorMessage != "" {
			logByType(ctx, errorNoticeType, errorMessage)
			logByType(ctx, errorNoticeType, "Failing command: {{_FailingCommand_}}%s{{|-|}}", cmdText)
		}
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

// Start launches command detached from AppShelf and returns its pid. The
// process is not tied to ctx and keeps running after AppShelf exits.
func Start(ctx context.Context, command string, args ...string) (int, error) {
	if command == "" {
		return 0, ErrNoCommand
	}
	logger.Info(ctx, "Starting: {{_RunningCommand_}}%s{{|-|}}", Display(command, args...))

	cmd := exec.Command(command, args...)
	cmd.SysProcAttr = detachAttr()
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start %s: %w", command, err)
	}
	pid := cmd.Process.Pid
	go func() {
		// Reap the child so it does not linger as a zombie while we run.
		_ = cmd.Wait()
	}()
	return pid, nil
}

func logByType(ctx context.Context, noticeType string, format string, args ...any) {
	switch strings.ToLower(noticeType) {
	case "notice":
		logger.Notice(ctx, format, args...)
	case "info":
		logger.Info(ctx, format, args...)
	case "warn", "warning":
		logger.Warn(ctx, format, args...)
	case "error":
		logger.Error(ctx, format, args...)
	case "debug":
		logger.Debug(ctx, format, args...)
	default:
		logger.Notice(ctx, format, args...)
	}
}
