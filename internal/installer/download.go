package installer

import (
	"AppShelf/internal/fsutil"
	"AppShelf/internal/logger"
	"AppShelf/internal/version"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
)

// ErrNoDownload is returned when the app has no download URL.
var ErrNoDownload = errors.New("no download url")

// Progress receives downloaded bytes.
type Progress interface {
	io.Writer
	Finish()
}

// Download fetches rawURL into dest, reporting progress through newProgress
// when it is not nil.
// dest only appears once the download completed.
func Download(ctx context.Context, client *http.Client, rawURL, dest string, newProgress func(total int64) Progress) error {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", version.ApplicationName+"/"+version.Version)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: %s", rawURL, resp.Status)
	}

	var body io.Reader = resp.Body
	if newProgress != nil {
		p := newProgress(resp.ContentLength)
		defer p.Finish()
		body = io.TeeReader(resp.Body, p)
	}
	return fsutil.WriteFileAtomic(dest, body, 0644)
}

// FileNameFromURL returns the last path element of rawURL, or fallback.
func FileNameFromURL(rawURL, fallback string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallback
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return fallback
	}
	return name
}

// Download saves the package of id into the downloads folder and returns
// its path.
func (in *Installer) Download(ctx context.Context, id string) (string, error) {
	app, err := in.Catalog.Get(id)
	if err != nil {
		return "", err
	}
	if app.DownloadURL == "" {
		return "", fmt.Errorf("%w for %s", ErrNoDownload, app.ID)
	}

	dest := filepath.Join(in.DownloadsDir, FileNameFromURL(app.DownloadURL, app.ID))
	logger.Notice(ctx, "Downloading {{_App_}}%s{{|-|}} to '{{_File_}}%s{{|-|}}'.", app.DisplayName(), dest)

	var newProgress func(int64) Progress
	if in.NewProgress != nil {
		newProgress = func(total int64) Progress {
			return in.NewProgress(app.DisplayName(), total)
		}
	}
	if err := Download(ctx, in.HTTPClient, app.DownloadURL, dest, newProgress); err != nil {
		return "", err
	}
	logger.Notice(ctx, "Download complete.")
	return dest, nil
}
