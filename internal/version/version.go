// Package version provides version information for cmdguard.
// The Version variable is set at build time via ldflags.
package version

import (
	"runtime/debug"
	"strings"
)

// Version is the current version of cmdguard.
// Set at build time via: -ldflags "-X github.com/xdg/cmdguard/internal/version.Version=v1.0.0"
// Defaults to "dev" for development builds.
var Version = "dev"

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Get returns Version, or the module version recorded by `go install` when
// Version was not set at build time.
func Get() string {
	if !IsDev(Version) {
		return Version
	}
	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return Version
}

// IsDev reports whether v names a development build.
func IsDev(v string) bool {
	return v == "" || strings.Contains(v, "dev")
}
