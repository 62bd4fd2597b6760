package config

import (
	"AppShelf/internal/paths"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func useTempConfigHome(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	paths.ConfigHomeOverride = tempDir
	t.Cleanup(func() { paths.ConfigHomeOverride = "" })
	return tempDir
}

func TestSaveAndLoad(t *testing.T) {
	useTempConfigHome(t)

	conf := Default()
	conf.Update.RemoteURL = "http://localhost:9999/db"
	conf.Paths.DataFolder = "/tmp/appshelf-data"

	if err := SaveAppConfig(conf); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded := LoadAppConfig()
	if loaded.Update.RemoteURL != "http://localhost:9999/db" {
		t.Errorf("Expected RemoteURL 'http://localhost:9999/db', got '%s'", loaded.Update.RemoteURL)
	}
	if loaded.DataDir != "/tmp/appshelf-data" {
		t.Errorf("Expected DataDir '/tmp/appshelf-data', got '%s'", loaded.DataDir)
	}
}

func TestLoadWritesDefaults(t *testing.T) {
	useTempConfigHome(t)

	loaded := LoadAppConfig()
	if loaded.Update.Schedule != Default().Update.Schedule {
		t.Errorf("Expected default schedule, got '%s'", loaded.Update.Schedule)
	}
	if _, err := os.Stat(paths.GetConfigFilePath()); err != nil {
		t.Errorf("Expected config file to be written: %v", err)
	}
}

func TestLoadFillsMissingKeys(t *testing.T) {
	useTempConfigHome(t)

	path := paths.GetConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[update]\nfetch_timeout = \"5s\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	loaded := LoadAppConfig()
	if loaded.FetchTimeout() != 5*time.Second {
		t.Errorf("Expected 5s fetch timeout, got %v", loaded.FetchTimeout())
	}
	if loaded.Update.RemoteURL == "" {
		t.Error("Expected RemoteURL to fall back to the default")
	}
}

func TestDurationFallback(t *testing.T) {
	conf := Default()
	conf.Update.FetchTimeout = "not-a-duration"
	conf.Install.CommandTimeout = "-1s"

	if conf.FetchTimeout() != 30*time.Second {
		t.Errorf("Expected 30s fallback, got %v", conf.FetchTimeout())
	}
	if conf.CommandTimeout() != 30*time.Minute {
		t.Errorf("Expected 30m fallback, got %v", conf.CommandTimeout())
	}
}
