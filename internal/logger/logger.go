package logger

import (
	"AppShelf/internal/console"
	"AppShelf/internal/version"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Custom log levels
const (
	LevelTrace  = slog.Level(-8)
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.Level(-2)
	LevelNotice = slog.LevelInfo
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
	LevelFatal  = slog.Level(12)
)

const timeFormat = "2006-01-02 15:04:05"

// LevelVar allows dynamic changing of the console log level
var LevelVar = new(slog.LevelVar)

// FileLevelVar controls the log file level
var FileLevelVar = new(slog.LevelVar)

var (
	logFileMu sync.Mutex
	logFile   *os.File
)

// displayOut receives Display output.
var displayOut io.Writer = os.Stdout

func init() {
	LevelVar.Set(LevelNotice)
	FileLevelVar.Set(LevelInfo)
}

// SetLevel sets the console level. The file level follows it below Info.
func SetLevel(level slog.Level) {
	LevelVar.Set(level)
	if level < LevelInfo {
		FileLevelVar.Set(level)
	} else {
		FileLevelVar.Set(LevelInfo)
	}
}

var levelLabels = map[slog.Level]string{
	LevelTrace:  "[TRACE ]",
	LevelDebug:  "[DEBUG ]",
	LevelInfo:   "[INFO  ]",
	LevelNotice: "[NOTICE]",
	LevelWarn:   "[WARN  ]",
	LevelError:  "[ERROR ]",
	LevelFatal:  "[FATAL ]",
}

var levelColors = map[slog.Level]string{
	LevelTrace:  console.CodeBlue,
	LevelDebug:  console.CodeBlue,
	LevelInfo:   console.CodeBlue,
	LevelNotice: console.CodeGreen,
	LevelWarn:   console.CodeYellow,
	LevelError:  console.CodeRed,
	LevelFatal:  console.CodeRedBg + console.CodeWhite,
}

func levelReplacer(color bool) func(groups []string, a slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key != slog.LevelKey {
			return a
		}
		level, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}
		label, known := levelLabels[level]
		if !known {
			return slog.String(a.Key, "["+level.String()+"]")
		}
		if color {
			label = levelColors[level] + label + console.CodeReset
		}
		return slog.String(a.Key, label+"  ")
	}
}

// NewHandler builds a tint handler for w. Colors are only used when color is true.
func NewHandler(w io.Writer, level slog.Leveler, color bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:       level,
		TimeFormat:  timeFormat,
		NoColor:     !color,
		ReplaceAttr: levelReplacer(color),
	})
}

// NewLogger returns a logger writing to stderr and, when logFilePath is not
// empty, to a freshly truncated log file.
func NewLogger(logFilePath string) *slog.Logger {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))
	handlers := []slog.Handler{NewHandler(os.Stderr, LevelVar, isTTY)}

	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err == nil {
			f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			} else {
				logFileMu.Lock()
				logFile = f
				logFileMu.Unlock()
				handlers = append(handlers, NewHandler(f, FileLevelVar, false))
			}
		}
	}

	return slog.New(&FanoutHandler{handlers: handlers})
}

// Cleanup closes the log file opened by NewLogger.
func Cleanup() {
	logFileMu.Lock()
	defer logFileMu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// FanoutHandler broadcasts records to multiple handlers
type FanoutHandler struct {
	handlers []slog.Handler
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &FanoutHandler{handlers: newHandlers}
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &FanoutHandler{handlers: newHandlers}
}

// resolveMsg flattens string slices into multi-line messages
func resolveMsg(msg any) string {
	switch v := msg.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, "\n")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, resolveMsg(item))
		}
		return strings.Join(parts, "\n")
	default:
		return fmt.Sprint(v)
	}
}

func log(ctx context.Context, level slog.Level, msg any, args ...any) {
	logAt(ctx, time.Now(), level, msg, args...)
}

func logAt(ctx context.Context, t time.Time, level slog.Level, msg any, args ...any) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, level) {
		return
	}

	msgStr := resolveMsg(msg)
	if len(args) > 0 && strings.Contains(msgStr, "%") {
		msgStr = fmt.Sprintf(msgStr, args...)
		args = nil
	}
	msgStr = console.Parse(msgStr)

	// One record per line so every line carries a timestamp and level
	for i, line := range strings.Split(msgStr, "\n") {
		if strings.Contains(line, "\x1b[") {
			line += console.CodeReset
		}
		r := slog.NewRecord(t, level, line, 0)
		if i == 0 {
			r.Add(args...)
		}
		_ = h.Handle(ctx, r)
	}
}

func Trace(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelTrace, msg, args...)
}

func Debug(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelInfo, msg, args...)
}

func Notice(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelNotice, msg, args...)
}

func Warn(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelError, msg, args...)
}

// Display prints command results to stdout. Unlike the level helpers it is
// not filtered and carries no timestamp.
func Display(ctx context.Context, msg any, args ...any) {
	msgStr := resolveMsg(msg)
	if len(args) > 0 {
		msgStr = fmt.Sprintf(msgStr, args...)
	}
	fmt.Fprintln(displayOut, console.ToANSI(msgStr))
}

func getSystemInfo() []string {
	var info []string

	info = append(info, fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", version.ApplicationName, version.Version))
	info = append(info, "")

	executable, _ := os.Executable()
	info = append(info, fmt.Sprintf("Currently running as: %s (PID %d)", executable, os.Getpid()))
	info = append(info, "")

	info = append(info, fmt.Sprintf("ARCH:       %s", runtime.GOARCH))
	info = append(info, fmt.Sprintf("OS:         %s", runtime.GOOS))
	info = append(info, fmt.Sprintf("BINARY:     %s", filepath.Base(executable)))

	if currentUser, err := user.Current(); err == nil {
		info = append(info, fmt.Sprintf("USER:       %s (uid %s)", currentUser.Username, currentUser.Uid))
		info = append(info, fmt.Sprintf("HOMEDIR:    %s", currentUser.HomeDir))
	} else {
		info = append(info, fmt.Sprintf("User Info Error: %v", err))
	}

	return info
}

// Fatal logs a message with system information and a stack trace, then
// panics with FatalError so main can run cleanup before exiting.
func Fatal(ctx context.Context, msg any, args ...any) {
	fatalWithStackSkip(ctx, 2, msg, args...)
}

func fatalWithStackSkip(ctx context.Context, skip int, msg any, args ...any) {
	now := time.Now()

	pc := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pc)
	frames := runtime.CallersFrames(pc[:n])

	var allFrames []runtime.Frame
	for {
		frame, more := frames.Next()
		allFrames = append(allFrames, frame)
		if !more {
			break
		}
	}

	var infoLines []string
	for _, line := range getSystemInfo() {
		if line != "" {
			line = "  " + line
		}
		infoLines = append(infoLines, line)
	}

	width := len(fmt.Sprintf("%d", len(allFrames)-1))
	wd, _ := os.Getwd()
	var traceLines []string
	indent := ""
	for i := len(allFrames) - 1; i >= 0; i-- {
		frame := allFrames[i]
		if wd != "" {
			if rel, err := filepath.Rel(wd, frame.File); err == nil && !strings.HasPrefix(rel, "..") {
				frame.File = "./" + filepath.ToSlash(rel)
			}
		}

		arrow := ""
		arrowIndent := indent
		if i < len(allFrames)-1 {
			arrow = "└>"
			if len(indent) >= 2 {
				arrowIndent = indent[:len(indent)-2]
			}
		}

		traceLines = append(traceLines, fmt.Sprintf(
			"  {{_TraceFrameNumber_}}%*d{{|-|}}: %s{{_TraceFrameLines_}}%s{{|-|}}{{_TraceSourceFile_}}%s{{|-|}}:{{_TraceLineNumber_}}%d{{|-|}} ({{_TraceFunction_}}%s{{|-|}})",
			width, i, arrowIndent, arrow, frame.File, frame.Line, filepath.Base(frame.Function),
		))
		indent += "  "
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(resolveMsg(msg), args...)
	}

	output := []any{
		"{{_TraceHeader_}}### BEGIN SYSTEM INFORMATION AND STACK TRACE ###",
		infoLines,
		"",
		traceLines,
		"{{_TraceFooter_}}### END SYSTEM INFORMATION AND STACK TRACE ###",
		"",
		msg,
		"",
		"{{_FatalFooter_}}Please let the dev know of this error.",
	}
	logAt(ctx, now, LevelFatal, output)

	panic(FatalError{})
}

// FatalNoTrace logs a message at FatalLevel without stack trace and exits
func FatalNoTrace(ctx context.Context, msg any, args ...any) {
	if len(args) > 0 {
		msg = fmt.Sprintf(resolveMsg(msg), args...)
	}
	logAt(ctx, time.Now(), LevelFatal, msg)
	panic(FatalError{})
}

// FatalError is a special error used to panic from Fatal logger calls
// This allows the main run loop to recover and perform cleanup before exiting
type FatalError struct{}

func (FatalError) Error() string {
	return "fatal error"
}
