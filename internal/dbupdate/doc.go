// Package dbupdate keeps the local application database in sync with the
// remote copy.
//
// A check runs five steps in order:
//   - Gate: decide from the settings and the last-check record whether to run
//   - Fetch: download the remote file to the staging path
//   - Diff: compare content hashes of the local and staged files
//   - Apply: back up the local file and replace it with the staged one
//   - Record: persist the time of the check
//
// Every step fails soft. Errors are logged and turned into an Outcome, and
// the local file is never touched unless the staged file is known to differ.
//
// Example usage:
//
//	checker := dbupdate.NewChecker(dbupdate.Options{
//	    RemoteURL:    url,
//	    LocalPath:    files.LocalDatabase,
//	    StagingPath:  files.Staging,
//	    SettingsPath: files.Settings,
//	    RecordPath:   files.LastCheck,
//	})
//	if checker.Run(ctx) == dbupdate.Updated {
//	    // reload the catalog
//	}
package dbupdate
