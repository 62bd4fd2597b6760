package catalog

import (
	"AppShelf/internal/settings"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strings"
)

// App is one catalog entry.
type App struct {
	ID               string  `json:"id" yaml:"id"`
	Name             string  `json:"name" yaml:"name"`
	Description      string  `json:"description,omitempty" yaml:"description"`
	Version          string  `json:"version,omitempty" yaml:"version"`
	VersionURL       string  `json:"version_url,omitempty" yaml:"version_url"`
	DownloadURL      string  `json:"download_url,omitempty" yaml:"download_url"`
	Installed        bool    `json:"installed" yaml:"installed"`
	InstallCommand   Command `json:"install_command,omitempty" yaml:"install_command"`
	UninstallCommand Command `json:"uninstall_command,omitempty" yaml:"uninstall_command"`
	LaunchCommand    Command `json:"launch_command,omitempty" yaml:"launch_command"`
	LatestVersion    string  `json:"latest_version,omitempty" yaml:"latest_version"`
}

// DisplayName returns Name, or ID when the entry has no name.
func (a App) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

// UpdateAvailable reports whether a newer release was recorded for the app.
func (a App) UpdateAvailable() bool {
	return a.LatestVersion != "" && a.LatestVersion != a.Version
}

var idRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// IsIDValid reports whether id can be used as an app identifier.
func IsIDValid(id string) bool {
	return idRegex.MatchString(id)
}

// ErrNotFound is returned when no app has the requested id.
var ErrNotFound = errors.New("app not found")

// Filter selects apps by installation state.
type Filter int

const (
	All Filter = iota
	Installed
	Available
)

// Catalog is the loaded apps_metadata.json.
type Catalog struct {
	store settings.JSONStore
	path  string
	Apps  []App
}

// Load reads the catalog at path. A missing file is an empty catalog.
func Load(store settings.JSONStore, path string) (*Catalog, error) {
	c := &Catalog{store: store, path: path}
	if err := store.Load(path, &c.Apps); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

// Path returns the file the catalog is stored in.
func (c *Catalog) Path() string {
	return c.path
}

// Save writes the catalog back to its file.
func (c *Catalog) Save() error {
	apps := c.Apps
	if apps == nil {
		apps = []App{}
	}
	if err := c.store.Save(c.path, apps); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

func (c *Catalog) index(id string) int {
	return slices.IndexFunc(c.Apps, func(a App) bool {
		return strings.EqualFold(a.ID, id)
	})
}

// Get returns a copy of the app with id. Ids match case-insensitively.
func (c *Catalog) Get(id string) (App, error) {
	i := c.index(id)
	if i < 0 {
		return App{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.Apps[i], nil
}

// Update applies fn to the app with id and saves the catalog. It returns
// false without saving when no app has that id.
func (c *Catalog) Update(id string, fn func(*App)) (bool, error) {
	i := c.index(id)
	if i < 0 {
		return false, nil
	}
	fn(&c.Apps[i])
	return true, c.Save()
}

// List returns the apps matching f in catalog order.
func (c *Catalog) List(f Filter) []App {
	var out []App
	for _, a := range c.Apps {
		switch {
		case f == Installed && !a.Installed:
			continue
		case f == Available && a.Installed:
			continue
		}
		out = append(out, a)
	}
	return out
}

// IDs returns the ids of all apps in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.Apps))
	for i, a := range c.Apps {
		ids[i] = a.ID
	}
	return ids
}
