package update

import (
	"AppShelf/internal/version"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// compareVersions compares two version strings and returns:
// -1 if v1 < v2
//
//	0 if v1 == v2
//	1 if v1 > v2
func compareVersions(v1, v2 string) int {
	v1 = strings.TrimPrefix(strings.TrimSpace(v1), "v")
	v2 = strings.TrimPrefix(strings.TrimSpace(v2), "v")

	sv1, err1 := semver.NewVersion(v1)
	sv2, err2 := semver.NewVersion(v2)
	if err1 == nil && err2 == nil {
		return sv1.Compare(sv2)
	}

	// Custom versioning such as 2024.01.20.1: compare dotted parts
	p1 := strings.Split(v1, ".")
	p2 := strings.Split(v2, ".")

	for i := 0; i < len(p1) && i < len(p2); i++ {
		s1, s2 := p1[i], p2[i]
		if s1 == s2 {
			continue
		}

		// A part without a suffix is a release and sorts above a pre-release
		h1 := strings.Contains(s1, "-")
		h2 := strings.Contains(s2, "-")
		if h1 || h2 {
			if h1 != h2 {
				if h1 {
					return -1
				}
				return 1
			}
			return strings.Compare(s1, s2)
		}

		n1, e1 := strconv.Atoi(s1)
		n2, e2 := strconv.Atoi(s2)
		if e1 == nil && e2 == nil {
			if n1 > n2 {
				return 1
			}
			return -1
		}

		return strings.Compare(s1, s2)
	}

	switch {
	case len(p1) == len(p2):
		return 0
	case len(p1) > len(p2):
		// 1.0.0.1 > 1.0.0 unless the extra part is a suffix
		if strings.Contains(p1[len(p2)], "-") {
			return -1
		}
		return 1
	default:
		if strings.Contains(p2[len(p1)], "-") {
			return 1
		}
		return -1
	}
}

// IsNewer reports whether latest is a newer version than current. Empty
// versions are never newer.
func IsNewer(latest, current string) bool {
	if strings.TrimSpace(latest) == "" {
		return false
	}
	if strings.TrimSpace(current) == "" {
		return true
	}
	return compareVersions(latest, current) > 0
}

// GetCurrentChannel returns the update channel of the running binary.
// v1.2.3 is stable, v0.0.0-dev is dev, -rc1 is rc1, and so on.
func GetCurrentChannel() string {
	return GetChannelFromVersion(version.Version)
}

// GetChannelFromVersion extracts the channel (suffix) from a version string.
func GetChannelFromVersion(v string) string {
	if _, suffix, ok := strings.Cut(v, "-"); ok {
		return suffix
	}
	return "stable"
}
