// Package version reports which build of casedesk is running.
package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are set at build time via ldflags. When they are left at
// "unknown", the VCS stamp the Go toolchain embeds is used instead.
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns the version string (commit-hash based, no semver).
// A "+dirty" suffix marks builds from a modified working tree.
func String() string {
	commit, built, dirty := Commit, BuildTime, false
	if commit == "unknown" || built == "unknown" {
		vcsCommit, vcsTime, modified := fromBuildInfo()
		if commit == "unknown" && vcsCommit != "" {
			commit, dirty = vcsCommit, modified
		}
		if built == "unknown" && vcsTime != "" {
			built = vcsTime
		}
	}

	short := shortCommit(commit)
	if dirty {
		short += "+dirty"
	}
	return fmt.Sprintf("casedesk dev (commit: %s, built: %s)", short, built)
}

func fromBuildInfo() (commit, built string, modified bool) {
	info, ok := readBuildInfo()
	if !ok {
		return "", "", false
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
		case "vcs.time":
			built = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	return commit, built, modified
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
