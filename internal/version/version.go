package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are populated at build time using -ldflags
var (
	// Version is the semantic version of the application
	Version = "dev"

	// BuildTime is the time the binary was built
	BuildTime = "unknown"

	// Revision is the commit the binary was built from.  Falls back to the VCS stamp Go embeds when not set.
	Revision = ""
)

// GetVersion returns the current version of the application
func GetVersion() string {
	return Version
}

// GetBuildTime returns the build time of the binary
func GetBuildTime() string {
	return BuildTime
}

// GetRevision returns the commit the binary was built from, or "unknown"
func GetRevision() string {
	if Revision != "" {
		return Revision
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				return setting.Value
			}
		}
	}
	return "unknown"
}

// GetVersionInfo returns a formatted string with version information
func GetVersionInfo() string {
	return fmt.Sprintf("nplay v%s (built %s, revision %s, %s/%s)", Version, BuildTime, GetRevision(), runtime.GOOS, runtime.GOARCH)
}
