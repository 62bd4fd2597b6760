package catalog

import (
	"AppShelf/internal/settings"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const legacyCatalog = `[
  {
    "id": "vlc",
    "name": "VLC media player",
    "version": "3.0.18",
    "version_url": "https://api.github.com/repos/videolan/vlc/releases/latest",
    "installed": true,
    "install_command": "winget install --id VideoLAN.VLC -e",
    "uninstall_command": ["winget", "uninstall", "--id", "VideoLAN.VLC"],
    "launch_command": "\"C:/Program Files/VideoLAN/VLC/vlc.exe\""
  },
  {
    "id": "gimp",
    "name": "GIMP",
    "installed": false,
    "install_command": null
  }
]`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apps_metadata.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadLegacyCommands(t *testing.T) {
	c, err := Load(settings.FileStore{}, writeCatalog(t, legacyCatalog))
	require.NoError(t, err)
	require.Len(t, c.Apps, 2)

	vlc, err := c.Get("VLC")
	require.NoError(t, err)
	require.Equal(t, Command{"winget", "install", "--id", "VideoLAN.VLC", "-e"}, vlc.InstallCommand)
	require.Equal(t, Command{"winget", "uninstall", "--id", "VideoLAN.VLC"}, vlc.UninstallCommand)
	require.Equal(t, Command{"C:/Program Files/VideoLAN/VLC/vlc.exe"}, vlc.LaunchCommand)

	gimp, err := c.Get("gimp")
	require.NoError(t, err)
	require.True(t, gimp.InstallCommand.Empty())
}

func TestLoadMissingIsEmpty(t *testing.T) {
	c, err := Load(settings.FileStore{}, filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	require.Empty(t, c.Apps)
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(settings.FileStore{}, writeCatalog(t, `{"id": 1`))
	require.Error(t, err)
}

func TestGetUnknown(t *testing.T) {
	c, err := Load(settings.FileStore{}, writeCatalog(t, legacyCatalog))
	require.NoError(t, err)
	_, err = c.Get("firefox")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePersists(t *testing.T) {
	path := writeCatalog(t, legacyCatalog)
	c, err := Load(settings.FileStore{}, path)
	require.NoError(t, err)

	ok, err := c.Update("gimp", func(a *App) { a.Installed = true })
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.Update("firefox", func(a *App) { a.Installed = true })
	require.NoError(t, err)
	require.False(t, ok)

	reloaded, err := Load(settings.FileStore{}, path)
	require.NoError(t, err)
	gimp, err := reloaded.Get("gimp")
	require.NoError(t, err)
	require.True(t, gimp.Installed)

	// Saved commands are written back as argument vectors
	vlc, err := reloaded.Get("vlc")
	require.NoError(t, err)
	require.Equal(t, "VideoLAN.VLC", vlc.InstallCommand[3])
}

func TestList(t *testing.T) {
	c, err := Load(settings.FileStore{}, writeCatalog(t, legacyCatalog))
	require.NoError(t, err)

	require.Len(t, c.List(All), 2)
	require.Equal(t, "vlc", c.List(Installed)[0].ID)
	require.Equal(t, "gimp", c.List(Available)[0].ID)
	require.Equal(t, []string{"vlc", "gimp"}, c.IDs())
}

func TestCommandString(t *testing.T) {
	cmd, err := ParseCommand(`app --title 'hello world'`)
	require.NoError(t, err)
	require.Equal(t, Command{"app", "--title", "hello world"}, cmd)
	require.Equal(t, `app --title "hello world"`, cmd.String())
	require.Equal(t, "app", cmd.Program())
	require.Equal(t, []string{"--title", "hello world"}, cmd.Args())
}

func TestIsIDValid(t *testing.T) {
	for id, want := range map[string]bool{
		"vlc":          true,
		"VideoLAN.VLC": true,
		"7zip":         true,
		"my-app_2":     true,
		"":             false,
		"-app":         false,
		"has space":    false,
		"../escape":    false,
	} {
		require.Equal(t, want, IsIDValid(id), id)
	}
}
