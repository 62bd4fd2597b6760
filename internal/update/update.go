package update

import (
	"AppShelf/internal/console"
	"AppShelf/internal/logger"
	"AppShelf/internal/version"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
)

var (
	// AppUpdateAvailable is true if an update to AppShelf itself is available.
	AppUpdateAvailable bool
	// LatestAppVersion is the tag name of the latest AppShelf release.
	LatestAppVersion string
)

// SelfUpdate updates the AppShelf binary from GitHub Releases.
// requestedVersion may be empty (latest on the current channel), a channel
// name, or a specific tag starting with "v".
func SelfUpdate(ctx context.Context, force bool, yes bool, requestedVersion string) error {
	repo := selfupdate.ParseSlug(version.RepoSlug)

	currentChannel := GetCurrentChannel()
	if requestedVersion == "" {
		requestedVersion = currentChannel
	}
	specific := strings.HasPrefix(requestedVersion, "v")

	updater, err := getUpdater(requestedVersion)
	if err != nil {
		return fmt.Errorf("failed to create updater: %w", err)
	}

	var (
		latest *selfupdate.Release
		found  bool
	)
	if specific {
		latest, found, err = updater.DetectVersion(ctx, repo, requestedVersion)
	} else {
		latest, found, err = updater.DetectLatest(ctx, repo)
	}
	if err != nil {
		return fmt.Errorf("failed to detect latest version: %w", err)
	}
	if !found {
		return fmt.Errorf("no version found for target %s", requestedVersion)
	}

	remoteVersion := latest.Version()
	currentVersion := strings.TrimPrefix(version.Version, "v")
	if !specific {
		remoteChannel := GetChannelFromVersion(remoteVersion)
		if !strings.EqualFold(remoteChannel, currentChannel) && !strings.EqualFold(requestedVersion, remoteChannel) {
			logger.Warn(ctx, "{{_ApplicationName_}}%s{{|-|}} is on channel '{{_Branch_}}%s{{|-|}}', but the latest release is on channel '{{_Branch_}}%s{{|-|}}'. Ignoring.", version.ApplicationName, currentChannel, remoteChannel)
			return nil
		}
	}

	var question, initiationNotice string
	noNotice := fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} will not be updated.", version.ApplicationName)

	noticePrinter := func(ctx context.Context, msg string, args ...any) {
		logger.Notice(ctx, msg, args...)
	}

	if compareVersions(currentVersion, remoteVersion) == 0 {
		if !force {
			logger.Notice(ctx, "{{_ApplicationName_}}%s{{|-|}} is already up to date on channel '{{_Branch_}}%s{{|-|}}'.", version.ApplicationName, requestedVersion)
			logger.Notice(ctx, "Current version is '{{_Version_}}%s{{|-|}}'", version.Version)
			return nil
		}
		question = fmt.Sprintf("Would you like to forcefully re-apply {{_ApplicationName_}}%s{{|-|}} update '{{_Version_}}%s{{|-|}}'?", version.ApplicationName, version.Version)
		initiationNotice = fmt.Sprintf("Forcefully re-applying {{_ApplicationName_}}%s{{|-|}} update '{{_Version_}}%s{{|-|}}'", version.ApplicationName, remoteVersion)
	} else {
		question = fmt.Sprintf("Would you like to update {{_ApplicationName_}}%s{{|-|}} from '{{_Version_}}%s{{|-|}}' to '{{_Version_}}%s{{|-|}}' now?", version.ApplicationName, version.Version, remoteVersion)
		initiationNotice = fmt.Sprintf("Updating {{_ApplicationName_}}%s{{|-|}} from '{{_Version_}}%s{{|-|}}' to '{{_Version_}}%s{{|-|}}'", version.ApplicationName, version.Version, remoteVersion)
	}

	if !console.QuestionPrompt(ctx, noticePrinter, question, "Y", yes) {
		logger.Notice(ctx, noNotice)
		return nil
	}

	logger.Notice(ctx, initiationNotice)
	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}
	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		if strings.Contains(err.Error(), "permission denied") || strings.Contains(err.Error(), "Access is denied") {
			return rerunWithSudo(ctx, exe)
		}
		return fmt.Errorf("failed to update application: %w", err)
	}

	logger.Notice(ctx, "Updated {{_ApplicationName_}}%s{{|-|}} to '{{_Version_}}%s{{|-|}}'", version.ApplicationName, remoteVersion)
	return nil
}

func rerunWithSudo(ctx context.Context, exe string) error {
	logger.Warn(ctx, "Permission denied. Attempting to run with sudo...")
	cmd := exec.CommandContext(ctx, "sudo", append([]string{exe}, os.Args[1:]...)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to update with sudo: %w", err)
	}
	return nil
}

// CheckUpdates looks for a newer AppShelf release without prompting and
// tells the user when one exists.
func CheckUpdates(ctx context.Context) {
	AppUpdateAvailable, LatestAppVersion = checkAppUpdate(ctx)

	if AppUpdateAvailable {
		logger.Warn(ctx, []string{
			GetAppVersionDisplay(),
			fmt.Sprintf("An update to {{_ApplicationName_}}%s{{|-|}} is available.", version.ApplicationName),
			fmt.Sprintf("Run '{{_UserCommand_}}%s -u{{|-|}}' to update to version '{{_Version_}}%s{{|-|}}'.", version.CommandName, LatestAppVersion),
		})
		return
	}
	logger.Info(ctx, GetAppVersionDisplay())
}

// GetAppVersionDisplay returns the application name and version for display.
func GetAppVersionDisplay() string {
	return fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", version.ApplicationName, version.Version)
}

func checkAppUpdate(ctx context.Context) (bool, string) {
	channel := GetCurrentChannel()
	updater, err := getUpdater(channel)
	if err != nil {
		return false, ""
	}

	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(version.RepoSlug))
	if err != nil || !found {
		logger.Debug(ctx, "Release lookup for %s failed: %v", version.RepoSlug, err)
		return false, ""
	}

	remoteVersion := latest.Version()
	if !strings.EqualFold(GetChannelFromVersion(remoteVersion), channel) {
		return false, ""
	}

	latestVer, err := semver.NewVersion(remoteVersion)
	if err != nil {
		return false, ""
	}
	currentVer, err := semver.NewVersion(version.Version)
	if err != nil {
		return false, ""
	}
	if latestVer.GreaterThan(currentVer) {
		return true, remoteVersion
	}
	return false, version.Version
}

// getUpdater returns a selfupdate.Updater that only considers prereleases
// when the channel is not stable.
func getUpdater(channel string) (*selfupdate.Updater, error) {
	return selfupdate.NewUpdater(selfupdate.Config{
		Prerelease: !strings.EqualFold(channel, "stable"),
	})
}
