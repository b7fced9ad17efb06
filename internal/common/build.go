package common

import (
	"runtime/debug"
)

// Set via -ldflags "-X .../internal/common.Version=..." on release builds.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func GetModuleBuildInfo() (string, string, bool) {
	if Version != "dev" {
		return Version, GitCommit, true
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		version := info.Main.Version
		var gitCommit string

		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				gitCommit = setting.Value
				break
			}
		}

		return version, gitCommit, true
	}
	return "", "", false
}

// ShortCommit trims a revision to eight characters. Unknown revisions
// come back empty.
func ShortCommit(commit string) string {
	if commit == "unknown" {
		return ""
	}
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
