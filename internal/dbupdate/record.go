package dbupdate

import (
	"errors"
	"io/fs"
	"time"
)

// Record persists now as the time of the last completed check.
func (c *Checker) Record(now time.Time) error {
	return c.opts.Store.Save(c.opts.RecordPath, LastCheck{LastCheck: now.Format(time.RFC3339Nano)})
}

// LoadRecord reads the last-check record. A missing record returns nil with
// no error. A record that cannot be decoded returns an empty LastCheck and
// the error, which the gate treats as "no valid record".
func (c *Checker) LoadRecord() (*LastCheck, error) {
	var lc LastCheck
	if err := c.opts.Store.Load(c.opts.RecordPath, &lc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return &LastCheck{}, err
	}
	return &lc, nil
}
