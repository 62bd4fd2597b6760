// Package catalog manages the list of applications AppShelf knows about.
//
// The catalog lives in apps_metadata.json in the data folder. Each entry
// describes one application and the argument vectors used to install,
// uninstall and launch it. Commands are never interpreted by a shell:
//
//   - A list value is used as the argument vector directly
//   - A string value (older catalogs) is split with shell word rules
//
// Manifests in JSON or YAML can be merged into the catalog with Import.
package catalog
