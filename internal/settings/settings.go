// Package settings persists the user's flat option map (settings.json).
package settings

import (
	"AppShelf/internal/constants"
	"AppShelf/internal/fsutil"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
)

// Settings is a flat mapping of option name to value.
type Settings map[string]any

// Defaults returns the values used for keys missing from the settings file.
func Defaults() Settings {
	return Settings{
		constants.UpdateCheckerKey:       false,
		constants.UpdateIntervalHoursKey: float64(constants.DefaultUpdateIntervalHours),
		constants.ThemeKey:               "dark",
	}
}

// Load reads the settings file through store and merges it over the defaults.
// A missing or malformed file yields the defaults together with the error,
// so callers can log it and carry on.
func Load(store JSONStore, path string) (Settings, error) {
	s := Defaults()
	var data map[string]any
	if err := store.Load(path, &data); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, err
	}
	maps.Copy(s, data)
	return s, nil
}

// Save writes the settings through store.
func Save(store JSONStore, path string, s Settings) error {
	return store.Save(path, s)
}

// Bool returns the boolean value of key, or def when absent or not a bool.
func (s Settings) Bool(key string, def bool) bool {
	switch v := s[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Float returns the numeric value of key, or def when absent or not a number.
func (s Settings) Float(key string, def float64) float64 {
	switch v := s[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// String returns the value of key formatted as a string, or def when absent.
func (s Settings) String(key string, def string) string {
	v, ok := s[key]
	if !ok || v == nil {
		return def
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}

// Set parses a raw command-line value (bool, number or string) and stores it.
func (s Settings) Set(key, raw string) {
	raw = strings.TrimSpace(raw)
	// Numbers first so "1" and "0" stay numeric
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		s[key] = f
		return
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		s[key] = b
		return
	}
	s[key] = raw
}

// Keys returns the setting names in sorted order.
func (s Settings) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// JSONStore loads and saves JSON documents by path.
type JSONStore interface {
	Load(path string, v any) error
	Save(path string, v any) error
}

// FileStore is a JSONStore backed by the local filesystem.
type FileStore struct{}

// Load decodes the JSON file at path into v. Missing files return an error
// wrapping fs.ErrNotExist.
func (FileStore) Load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Save encodes v as indented JSON, creating parent directories as needed.
// The file is replaced through a rename so readers never see partial JSON.
func (FileStore) Save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return fsutil.WriteFileAtomic(path, bytes.NewReader(append(data, '\n')), 0644)
}
