package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// manifest accepts either a bare list of apps or {"apps": [...]}.
type manifest struct {
	Apps []App `json:"apps" yaml:"apps"`
}

// ReadManifest decodes the apps in a JSON or YAML manifest. The format is
// chosen by extension; .yaml and .yml are YAML, everything else JSON.
func ReadManifest(path string) ([]App, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func decodeJSON(data []byte) ([]App, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var apps []App
		if err := json.Unmarshal(trimmed, &apps); err != nil {
			return nil, fmt.Errorf("decode manifest: %w", err)
		}
		return apps, nil
	}
	var m manifest
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return m.Apps, nil
}

func decodeYAML(data []byte) ([]App, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]
	if doc.Kind == yaml.SequenceNode {
		var apps []App
		if err := doc.Decode(&apps); err != nil {
			return nil, fmt.Errorf("decode manifest: %w", err)
		}
		return apps, nil
	}
	var m manifest
	if err := doc.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return m.Apps, nil
}

// ImportResult counts what Import changed.
type ImportResult struct {
	Added   int
	Updated int
}

// Import merges the apps of a manifest into the catalog by id and saves it.
// Existing entries keep their installed state and installed version.
// Nothing is saved when any entry has an invalid id.
func (c *Catalog) Import(path string) (ImportResult, error) {
	var res ImportResult
	apps, err := ReadManifest(path)
	if err != nil {
		return res, err
	}
	for _, a := range apps {
		if !IsIDValid(a.ID) {
			return res, fmt.Errorf("invalid app id %q in %s", a.ID, path)
		}
	}

	for _, a := range apps {
		i := c.index(a.ID)
		if i < 0 {
			c.Apps = append(c.Apps, a)
			res.Added++
			continue
		}
		existing := c.Apps[i]
		a.ID = existing.ID
		a.Installed = existing.Installed
		if existing.Installed && existing.Version != "" {
			a.Version = existing.Version
		}
		if a.LatestVersion == "" {
			a.LatestVersion = existing.LatestVersion
		}
		c.Apps[i] = a
		res.Updated++
	}
	return res, c.Save()
}
