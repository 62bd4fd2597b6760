package dbupdate

import (
	"AppShelf/internal/fsutil"
	"AppShelf/internal/settings"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// Outcome is the result of one Run.
type Outcome int

const (
	Skipped Outcome = iota
	Busy
	FetchFailed
	DiffFailed
	UpToDate
	Updated
	ApplyFailed
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Busy:
		return "busy"
	case FetchFailed:
		return "fetch failed"
	case DiffFailed:
		return "comparison failed"
	case UpToDate:
		return "up to date"
	case Updated:
		return "updated"
	case ApplyFailed:
		return "apply failed"
	default:
		return "unknown"
	}
}

// Checker runs the update workflow for one local database file.
// Runs never overlap, within the process or across processes when
// Options.LockPath is set.
type Checker struct {
	opts    Options
	log     Logger
	running sync.Mutex
}

// NewChecker returns a Checker for opts with defaults filled in.
func NewChecker(opts Options) *Checker {
	opts = opts.withDefaults()
	return &Checker{opts: opts, log: opts.Logger}
}

// Options returns the effective options.
func (c *Checker) Options() Options {
	return c.opts
}

// Policy loads the settings and returns the gate policy. Unreadable settings
// fall back to the defaults, which disable checking.
func (c *Checker) Policy(ctx context.Context) Policy {
	s, err := settings.Load(c.opts.Store, c.opts.SettingsPath)
	if err != nil {
		c.log.Warn(ctx, "Could not read settings '{{_File_}}%s{{|-|}}', using defaults: %v", c.opts.SettingsPath, err)
	}
	return PolicyFromSettings(s)
}

// Evaluate runs the gate against the stored settings and record.
func (c *Checker) Evaluate(ctx context.Context) Decision {
	last, err := c.LoadRecord()
	if err != nil {
		c.log.Warn(ctx, "Could not read last check record '{{_File_}}%s{{|-|}}': %v", c.opts.RecordPath, err)
	}
	return Evaluate(c.Policy(ctx), last, c.opts.Now())
}

// ShouldCheck reports whether the gate lets a check run now.
func (c *Checker) ShouldCheck(ctx context.Context) bool {
	d := c.Evaluate(ctx)
	if d.Proceed {
		c.log.Debug(ctx, "Update check due: %s", d.Reason)
	} else {
		c.log.Info(ctx, "Skipping update check: %s", d.Reason)
	}
	return d.Proceed
}

// Run performs one check. It never returns an error; failures are logged
// and reported through the Outcome. The record is only written when the
// comparison was conclusive.
func (c *Checker) Run(ctx context.Context) Outcome {
	if !c.running.TryLock() {
		c.log.Info(ctx, "An update check is already running.")
		return Busy
	}
	defer c.running.Unlock()

	if c.opts.LockPath != "" {
		unlock, ok := c.lockFile(ctx)
		if !ok {
			return Busy
		}
		defer unlock()
	}

	if !c.opts.Force && !c.ShouldCheck(ctx) {
		return Skipped
	}

	c.log.Info(ctx, "Checking '{{_URL_}}%s{{|-|}}' for database updates.", c.opts.RemoteURL)
	if err := c.Fetch(ctx); err != nil {
		c.log.Error(ctx, "Failed to download the database: %v", err)
		return FetchFailed
	}

	result, err := Diff(c.opts.LocalPath, c.opts.StagingPath)
	switch result {
	case Indeterminate:
		c.log.Error(ctx, "Could not compare the downloaded database: %v", err)
		c.discardStaged(ctx)
		return DiffFailed
	case Same:
		c.log.Notice(ctx, "Database is up to date.")
		c.discardStaged(ctx)
		c.record(ctx)
		return UpToDate
	}

	c.log.Notice(ctx, "A database update is available, applying.")
	if err := c.Apply(ctx); err != nil {
		c.log.Error(ctx, "Failed to apply the database update: %v", err)
		return ApplyFailed
	}
	c.log.Notice(ctx, "Database updated.")
	c.record(ctx)
	return Updated
}

// CheckForUpdates runs a check and reports whether the local file was replaced.
func (c *Checker) CheckForUpdates(ctx context.Context) bool {
	return c.Run(ctx) == Updated
}

func (c *Checker) record(ctx context.Context) {
	if err := c.Record(c.opts.Now()); err != nil {
		c.log.Warn(ctx, "Could not write last check record '{{_File_}}%s{{|-|}}': %v", c.opts.RecordPath, err)
	}
}

func (c *Checker) lockFile(ctx context.Context) (func(), bool) {
	if err := os.MkdirAll(filepath.Dir(c.opts.LockPath), 0755); err != nil {
		c.log.Error(ctx, "Could not create lock directory: %v", err)
		return nil, false
	}
	fl := flock.New(c.opts.LockPath)
	locked, err := fl.TryLock()
	if err != nil {
		c.log.Error(ctx, "Could not lock '{{_File_}}%s{{|-|}}': %v", c.opts.LockPath, err)
		return nil, false
	}
	if !locked {
		c.log.Info(ctx, "Another process is checking for database updates.")
		return nil, false
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			c.log.Warn(ctx, "Could not release '{{_File_}}%s{{|-|}}': %v", c.opts.LockPath, err)
		}
	}, true
}

// Status describes the state of the update workflow on disk.
type Status struct {
	Policy       Policy
	Decision     Decision
	LastCheck    time.Time
	HasLastCheck bool
	LocalExists  bool
	LocalHash    string
	BackupExists bool
	StagedExists bool
}

// Status reports the gate decision and the files the workflow manages.
func (c *Checker) Status(ctx context.Context) Status {
	last, err := c.LoadRecord()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		c.log.Debug(ctx, "Last check record unreadable: %v", err)
	}
	st := Status{
		Policy:       c.Policy(ctx),
		BackupExists: fsutil.FileExists(c.opts.BackupPath),
		StagedExists: fsutil.FileExists(c.opts.StagingPath),
	}
	st.LastCheck, st.HasLastCheck = last.Time()
	st.Decision = Evaluate(st.Policy, last, c.opts.Now())
	if fsutil.FileExists(c.opts.LocalPath) {
		st.LocalExists = true
		if hash, err := HashFile(c.opts.LocalPath); err == nil {
			st.LocalHash = hash
		}
	}
	return st
}
