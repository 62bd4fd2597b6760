package cmd

import (
	"AppShelf/internal/catalog"
	"AppShelf/internal/config"
	"AppShelf/internal/console"
	"AppShelf/internal/dbupdate"
	"AppShelf/internal/installer"
	"AppShelf/internal/logger"
	"AppShelf/internal/paths"
	"AppShelf/internal/settings"
	"AppShelf/internal/update"
	"context"
	"net/http"
)

// runtime carries the loaded configuration and builds the components the
// handlers act on.
type runtime struct {
	conf   config.AppConfig
	files  paths.DataFiles
	store  settings.FileStore
	client *http.Client
}

func newRuntime(conf config.AppConfig) *runtime {
	return &runtime{
		conf:   conf,
		files:  paths.GetDataFiles(conf.DataDir),
		client: &http.Client{},
	}
}

func (rt *runtime) checker(force bool) *dbupdate.Checker {
	return dbupdate.NewChecker(dbupdate.Options{
		RemoteURL:    rt.conf.Update.RemoteURL,
		LocalPath:    rt.files.LocalDatabase,
		StagingPath:  rt.files.Staging,
		BackupPath:   rt.files.Backup,
		SettingsPath: rt.files.Settings,
		RecordPath:   rt.files.LastCheck,
		LockPath:     rt.files.UpdateLock,
		Timeout:      rt.conf.FetchTimeout(),
		Force:        force,
		HTTPClient:   rt.client,
		Store:        rt.store,
		Logger:       logger.Sink{},
		NewProgress: func(total int64) dbupdate.Progress {
			return console.NewProgressBar("Database", total)
		},
	})
}

func (rt *runtime) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	cat, err := catalog.Load(rt.store, rt.files.Catalog)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "Loaded %d apps from '{{_File_}}%s{{|-|}}'.", len(cat.Apps), cat.Path())
	return cat, nil
}

func (rt *runtime) newInstaller(cat *catalog.Catalog) *installer.Installer {
	return &installer.Installer{
		Catalog:        cat,
		CommandTimeout: rt.conf.CommandTimeout(),
		DownloadsDir:   paths.GetDownloadsDir(),
		HTTPClient:     rt.client,
		NewProgress: func(label string, total int64) installer.Progress {
			return console.NewProgressBar(label, total)
		},
	}
}

func (rt *runtime) releases() *update.ReleaseChecker {
	return &update.ReleaseChecker{HTTPClient: rt.client}
}

func (rt *runtime) loadSettings(ctx context.Context) settings.Settings {
	s, err := settings.Load(rt.store, rt.files.Settings)
	if err != nil {
		logger.Warn(ctx, "Settings file '{{_File_}}%s{{|-|}}' is unreadable, using defaults: %v", rt.files.Settings, err)
	}
	return s
}
