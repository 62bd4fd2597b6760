package dbupdate

import (
	"AppShelf/internal/fsutil"
	"context"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrStagedMissing is returned by Apply when there is nothing to apply.
	ErrStagedMissing = errors.New("staged file missing")
	// ErrNoBackup is returned by Restore when no backup exists.
	ErrNoBackup = errors.New("no backup available")
)

// Apply backs up the local file, replaces it with the staged file and then
// removes the staged file. The local path never holds a partially written
// file. When the backup cannot be taken nothing is replaced.
func (c *Checker) Apply(ctx context.Context) error {
	staged, local, backup := c.opts.StagingPath, c.opts.LocalPath, c.opts.BackupPath

	if !fsutil.FileExists(staged) {
		return fmt.Errorf("%w: %s", ErrStagedMissing, staged)
	}

	if fsutil.FileExists(local) {
		if err := fsutil.CopyFileAtomic(local, backup); err != nil {
			return fmt.Errorf("backup %s: %w", local, err)
		}
		c.log.Debug(ctx, "Backed up '{{_File_}}%s{{|-|}}' to '{{_File_}}%s{{|-|}}'", local, backup)
	}

	if err := fsutil.CopyFileAtomic(staged, local); err != nil {
		return fmt.Errorf("replace %s: %w", local, err)
	}

	if err := os.Remove(staged); err != nil && !errors.Is(err, os.ErrNotExist) {
		c.log.Warn(ctx, "Could not remove staged file '{{_File_}}%s{{|-|}}': %v", staged, err)
	}
	return nil
}

// Restore puts the backup taken by the last Apply back in place of the
// local file. The backup itself is kept.
func (c *Checker) Restore(ctx context.Context) error {
	backup, local := c.opts.BackupPath, c.opts.LocalPath
	if !fsutil.FileExists(backup) {
		return fmt.Errorf("%w: %s", ErrNoBackup, backup)
	}
	if err := fsutil.CopyFileAtomic(backup, local); err != nil {
		return fmt.Errorf("restore %s: %w", local, err)
	}
	c.log.Notice(ctx, "Restored '{{_File_}}%s{{|-|}}' from backup.", local)
	return nil
}

func (c *Checker) discardStaged(ctx context.Context) {
	if err := os.Remove(c.opts.StagingPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		c.log.Warn(ctx, "Could not remove staged file '{{_File_}}%s{{|-|}}': %v", c.opts.StagingPath, err)
	}
}
