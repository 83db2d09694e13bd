// Package version provides build-time version information for CollegeFinder.
// Variables are injected at build time via ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/mod/semver"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns a formatted version string suitable for --version output.
func Info() string {
	return fmt.Sprintf("CollegeFinder %s (commit: %s, built: %s, go: %s)",
		Version, GitCommit, BuildDate, runtime.Version())
}

// Short returns just the version string (e.g., "0.1.0" or "dev").
func Short() string {
	return Version
}

// Canonical returns Version as a canonical semver string ("v1.2.3"), or ""
// when Version is not a valid semantic version (development builds).
func Canonical() string {
	return canonical(Version)
}

// IsRelease reports whether the binary carries a semantic version without a
// prerelease suffix.
func IsRelease() bool {
	v := Canonical()
	return v != "" && semver.Prerelease(v) == ""
}

// Compare orders two version strings with semver rules. Versions with or
// without the leading "v" are accepted; invalid versions sort first.
func Compare(a, b string) int {
	return semver.Compare(canonical(a), canonical(b))
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}

// Map returns version info as a map for JSON serialization.
func Map() map[string]string {
	return map[string]string{
		"version":    Version,
		"semver":     Canonical(),
		"git_commit": GitCommit,
		"build_date": BuildDate,
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
	}
}
