package update

import (
	"AppShelf/internal/catalog"
	"AppShelf/internal/logger"
	"AppShelf/internal/version"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultReleaseTimeout bounds a single release lookup.
	DefaultReleaseTimeout = 15 * time.Second
	maxConcurrentLookups  = 4
)

// ErrNoReleaseVersion is returned when a release carries neither a tag nor a name.
var ErrNoReleaseVersion = errors.New("release has no version")

// release is the subset of the GitHub "latest release" payload we read.
type release struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
}

// ReleaseChecker looks up the latest upstream release of catalog apps.
type ReleaseChecker struct {
	HTTPClient *http.Client
	Timeout    time.Duration
}

// AppUpdate is an installed app with a newer upstream release.
type AppUpdate struct {
	App    catalog.App
	Latest string
}

func (rc *ReleaseChecker) client() *http.Client {
	if rc.HTTPClient != nil {
		return rc.HTTPClient
	}
	return http.DefaultClient
}

// LatestVersion fetches versionURL, a GitHub releases/latest endpoint, and
// returns tag_name, or name when the tag is empty.
func (rc *ReleaseChecker) LatestVersion(ctx context.Context, versionURL string) (string, error) {
	timeout := rc.Timeout
	if timeout <= 0 {
		timeout = DefaultReleaseTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, versionURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", version.ApplicationName+"/"+version.Version)

	resp, err := rc.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", versionURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: %s", versionURL, resp.Status)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", fmt.Errorf("decode %s: %w", versionURL, err)
	}
	switch {
	case rel.TagName != "":
		return rel.TagName, nil
	case rel.Name != "":
		return rel.Name, nil
	default:
		return "", ErrNoReleaseVersion
	}
}

// CheckApps looks up every installed app that has a version URL and returns
// those with a newer release, in catalog order. Failed lookups are logged
// and skipped.
func (rc *ReleaseChecker) CheckApps(ctx context.Context, apps []catalog.App) []AppUpdate {
	latest := make([]string, len(apps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, app := range apps {
		if !app.Installed || app.VersionURL == "" {
			continue
		}
		g.Go(func() error {
			v, err := rc.LatestVersion(gctx, app.VersionURL)
			if err != nil {
				logger.Warn(ctx, "Failed to fetch the latest version of {{_App_}}%s{{|-|}}: %v", app.DisplayName(), err)
				return nil
			}
			latest[i] = v
			return nil
		})
	}
	_ = g.Wait()

	var updates []AppUpdate
	for i, app := range apps {
		if latest[i] == "" {
			continue
		}
		if IsNewer(latest[i], app.Version) {
			updates = append(updates, AppUpdate{App: app, Latest: latest[i]})
		} else {
			logger.Info(ctx, "{{_App_}}%s{{|-|}} is up to date ('{{_Version_}}%s{{|-|}}').", app.DisplayName(), app.Version)
		}
	}
	return updates
}

// CheckAppUpdates runs CheckApps over the catalog and records the newer
// versions found as latest_version.
func CheckAppUpdates(ctx context.Context, cat *catalog.Catalog, rc *ReleaseChecker) ([]AppUpdate, error) {
	updates := rc.CheckApps(ctx, cat.List(catalog.Installed))
	if len(updates) == 0 {
		return nil, nil
	}

	for _, u := range updates {
		for i := range cat.Apps {
			if cat.Apps[i].ID == u.App.ID {
				cat.Apps[i].LatestVersion = u.Latest
			}
		}
	}
	return updates, cat.Save()
}

// Reinstaller re-runs an app's install command at a new version.
type Reinstaller interface {
	Reinstall(ctx context.Context, id, newVersion string) bool
}

// UpdateApps reinstalls every app in updates and returns how many succeeded.
func UpdateApps(ctx context.Context, in Reinstaller, updates []AppUpdate) int {
	ok := 0
	for _, u := range updates {
		if in.Reinstall(ctx, u.App.ID, u.Latest) {
			ok++
		}
	}
	return ok
}
