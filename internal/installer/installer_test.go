package installer

import (
	"AppShelf/internal/catalog"
	"AppShelf/internal/settings"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHelperProcess(t *testing.T) {
	if os.Getenv("APPSHELF_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	switch args[0] {
	case "exit":
		code, _ := strconv.Atoi(args[1])
		os.Exit(code)
	case "sleep":
		time.Sleep(10 * time.Second)
	}
	os.Exit(0)
}

func helper(args ...string) catalog.Command {
	return append(catalog.Command{os.Args[0], "-test.run=TestHelperProcess", "--"}, args...)
}

func newInstaller(t *testing.T, apps ...catalog.App) *Installer {
	t.Helper()
	t.Setenv("APPSHELF_HELPER_PROCESS", "1")

	dir := t.TempDir()
	c, err := catalog.Load(settings.FileStore{}, filepath.Join(dir, "apps_metadata.json"))
	require.NoError(t, err)
	c.Apps = apps
	require.NoError(t, c.Save())

	return &Installer{Catalog: c, DownloadsDir: filepath.Join(dir, "downloads")}
}

func installed(t *testing.T, in *Installer, id string) bool {
	t.Helper()
	reloaded, err := catalog.Load(settings.FileStore{}, in.Catalog.Path())
	require.NoError(t, err)
	app, err := reloaded.Get(id)
	require.NoError(t, err)
	return app.Installed
}

func TestInstallMarksInstalled(t *testing.T) {
	in := newInstaller(t, catalog.App{ID: "vlc", InstallCommand: helper("exit", "0")})

	require.True(t, in.Install(context.Background(), "vlc"))
	require.True(t, installed(t, in, "vlc"))
}

func TestInstallFailure(t *testing.T) {
	in := newInstaller(t, catalog.App{ID: "vlc", InstallCommand: helper("exit", "1")})

	require.False(t, in.Install(context.Background(), "vlc"))
	require.False(t, installed(t, in, "vlc"))
}

func TestInstallWithoutCommand(t *testing.T) {
	in := newInstaller(t, catalog.App{ID: "vlc"})

	require.False(t, in.Install(context.Background(), "vlc"))
	require.False(t, in.Install(context.Background(), "unknown"))
}

func TestInstallTimeout(t *testing.T) {
	in := newInstaller(t, catalog.App{ID: "vlc", InstallCommand: helper("sleep")})
	in.CommandTimeout = 100 * time.Millisecond

	start := time.Now()
	require.False(t, in.Install(context.Background(), "vlc"))
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestUninstallClearsInstalled(t *testing.T) {
	in := newInstaller(t, catalog.App{ID: "vlc", Installed: true, UninstallCommand: helper("exit", "0")})

	require.True(t, in.Uninstall(context.Background(), "vlc"))
	require.False(t, installed(t, in, "vlc"))
}

func TestReinstallRecordsVersion(t *testing.T) {
	in := newInstaller(t, catalog.App{
		ID: "vlc", Installed: true, Version: "1.0.0", LatestVersion: "1.1.0",
		InstallCommand: helper("exit", "0"),
	})

	require.True(t, in.Reinstall(context.Background(), "vlc", "1.1.0"))
	app, err := in.Catalog.Get("vlc")
	require.NoError(t, err)
	require.Equal(t, "1.1.0", app.Version)
	require.Empty(t, app.LatestVersion)
}

func TestLaunch(t *testing.T) {
	in := newInstaller(t,
		catalog.App{ID: "vlc", LaunchCommand: helper("exit", "0")},
		catalog.App{ID: "gimp"},
		catalog.App{ID: "broken", LaunchCommand: catalog.Command{"/nonexistent/appshelf-test-binary"}},
	)

	require.True(t, in.Launch(context.Background(), "vlc"))
	require.False(t, in.Launch(context.Background(), "gimp"))
	require.False(t, in.Launch(context.Background(), "broken"))
}

type recordingProgress struct {
	bytes.Buffer
	label    string
	total    int64
	finished bool
}

func (p *recordingProgress) Finish() { p.finished = true }

func TestDownload(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 100*1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/vlc-3.0.20.exe" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		w.Write(payload)
	}))
	defer srv.Close()

	in := newInstaller(t,
		catalog.App{ID: "vlc", Name: "VLC", DownloadURL: srv.URL + "/files/vlc-3.0.20.exe"},
		catalog.App{ID: "gone", DownloadURL: srv.URL + "/files/missing"},
		catalog.App{ID: "gimp"},
	)
	var p *recordingProgress
	in.NewProgress = func(label string, total int64) Progress {
		p = &recordingProgress{label: label, total: total}
		return p
	}

	dest, err := in.Download(context.Background(), "vlc")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(in.DownloadsDir, "vlc-3.0.20.exe"), dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, payload, data)
	require.Equal(t, "VLC", p.label)
	require.Equal(t, int64(len(payload)), p.total)
	require.Equal(t, len(payload), p.Len())
	require.True(t, p.finished)

	_, err = in.Download(context.Background(), "gone")
	require.Error(t, err)
	require.NoFileExists(t, filepath.Join(in.DownloadsDir, "missing"))

	_, err = in.Download(context.Background(), "gimp")
	require.ErrorIs(t, err, ErrNoDownload)
}

func TestFileNameFromURL(t *testing.T) {
	for raw, want := range map[string]string{
		"https://example.com/a/b/setup.exe?x=1": "setup.exe",
		"https://example.com/":                  "fallback",
		"::bad":                                 "fallback",
	} {
		require.Equal(t, want, FileNameFromURL(raw, "fallback"), fmt.Sprint(raw))
	}
}
