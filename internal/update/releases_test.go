package update

import (
	"AppShelf/internal/catalog"
	"AppShelf/internal/settings"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/vlc":
			fmt.Fprint(w, `{"tag_name": "v3.0.20", "name": "VLC 3.0.20"}`)
		case "/gimp":
			fmt.Fprint(w, `{"tag_name": "", "name": "2.10.36"}`)
		case "/empty":
			fmt.Fprint(w, `{}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLatestVersion(t *testing.T) {
	srv := releaseServer(t)
	rc := &ReleaseChecker{}

	v, err := rc.LatestVersion(context.Background(), srv.URL+"/vlc")
	require.NoError(t, err)
	require.Equal(t, "v3.0.20", v)

	v, err = rc.LatestVersion(context.Background(), srv.URL+"/gimp")
	require.NoError(t, err)
	require.Equal(t, "2.10.36", v)

	_, err = rc.LatestVersion(context.Background(), srv.URL+"/empty")
	require.ErrorIs(t, err, ErrNoReleaseVersion)

	_, err = rc.LatestVersion(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
}

func TestCheckAppUpdates(t *testing.T) {
	srv := releaseServer(t)
	path := filepath.Join(t.TempDir(), "apps_metadata.json")
	cat, err := catalog.Load(settings.FileStore{}, path)
	require.NoError(t, err)
	cat.Apps = []catalog.App{
		{ID: "vlc", Installed: true, Version: "3.0.18", VersionURL: srv.URL + "/vlc"},
		{ID: "gimp", Installed: true, Version: "2.10.36", VersionURL: srv.URL + "/gimp"},
		{ID: "broken", Installed: true, Version: "1.0", VersionURL: srv.URL + "/missing"},
		{ID: "notinstalled", Version: "0.1", VersionURL: srv.URL + "/vlc"},
		{ID: "nourl", Installed: true, Version: "0.1"},
	}

	updates, err := CheckAppUpdates(context.Background(), cat, &ReleaseChecker{})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	require.Equal(t, "vlc", updates[0].App.ID)
	require.Equal(t, "v3.0.20", updates[0].Latest)

	reloaded, err := catalog.Load(settings.FileStore{}, path)
	require.NoError(t, err)
	vlc, err := reloaded.Get("vlc")
	require.NoError(t, err)
	require.Equal(t, "v3.0.20", vlc.LatestVersion)
	require.True(t, vlc.UpdateAvailable())
}

type fakeReinstaller struct {
	calls []string
}

func (f *fakeReinstaller) Reinstall(_ context.Context, id, newVersion string) bool {
	f.calls = append(f.calls, id+"@"+newVersion)
	return id != "bad"
}

func TestUpdateApps(t *testing.T) {
	f := &fakeReinstaller{}
	n := UpdateApps(context.Background(), f, []AppUpdate{
		{App: catalog.App{ID: "vlc"}, Latest: "3.0.20"},
		{App: catalog.App{ID: "bad"}, Latest: "1.1"},
	})
	require.Equal(t, 1, n)
	require.Equal(t, []string{"vlc@3.0.20", "bad@1.1"}, f.calls)
}
