package dbupdate

import (
	"AppShelf/internal/constants"
	"AppShelf/internal/settings"
	"context"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single fetch when Options.Timeout is unset.
const DefaultTimeout = 30 * time.Second

// Logger is the logging capability used by the workflow.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Notice(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any)  {}
func (nopLogger) Info(context.Context, string, ...any)   {}
func (nopLogger) Notice(context.Context, string, ...any) {}
func (nopLogger) Warn(context.Context, string, ...any)   {}
func (nopLogger) Error(context.Context, string, ...any)  {}

// Progress receives the downloaded bytes of a fetch.
type Progress interface {
	io.Writer
	Finish()
}

// Options configures a Checker. Paths are used as given; BackupPath defaults
// to LocalPath with a ".backup" suffix.
type Options struct {
	RemoteURL    string
	LocalPath    string
	StagingPath  string
	BackupPath   string
	SettingsPath string
	RecordPath   string
	// LockPath enables a cross-process lock file when set.
	LockPath string

	// Timeout bounds the whole fetch, including reading the body.
	Timeout time.Duration
	// Force skips the gate.
	Force bool

	HTTPClient  *http.Client
	Store       settings.JSONStore
	Logger      Logger
	NewProgress func(total int64) Progress
	Now         func() time.Time
}

func (o Options) withDefaults() Options {
	if o.BackupPath == "" && o.LocalPath != "" {
		o.BackupPath = o.LocalPath + constants.BackupSuffix
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{}
	}
	if o.Store == nil {
		o.Store = settings.FileStore{}
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
