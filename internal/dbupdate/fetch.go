package dbupdate

import (
	"AppShelf/internal/fsutil"
	"AppShelf/internal/version"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrFetchFailed is returned when the remote file could not be downloaded.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrFetchStatus is returned for a non-2xx response.
	ErrFetchStatus = errors.New("unexpected response status")
)

// Fetch downloads the remote file into the staging path. The staging path
// only ever holds a complete download; a failed fetch leaves it as it was.
func (c *Checker) Fetch(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.RemoteURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", version.ApplicationName+"/"+version.Version)

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s", ErrFetchStatus, resp.Status)
	}

	var body io.Reader = resp.Body
	if c.opts.NewProgress != nil {
		p := c.opts.NewProgress(resp.ContentLength)
		defer p.Finish()
		body = io.TeeReader(resp.Body, p)
	}

	if err := fsutil.WriteFileAtomic(c.opts.StagingPath, body, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return nil
}
