package version

import (
	"runtime/debug"
	"testing"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo) {
	t.Helper()
	oldCommit, oldBuild, oldRead := Commit, BuildTime, readBuildInfo
	t.Cleanup(func() { Commit, BuildTime, readBuildInfo = oldCommit, oldBuild, oldRead })

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return info, info != nil
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name   string
		commit string
		built  string
		info   *debug.BuildInfo
		want   string
	}{
		{
			name:   "ldflags win",
			commit: "0123456789abcdef",
			built:  "2026-10-19",
			info: &debug.BuildInfo{Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "fedcba9876543210"},
			}},
			want: "casedesk dev (commit: 0123456, built: 2026-10-19)",
		},
		{
			name:   "vcs stamp fallback",
			commit: "unknown",
			built:  "unknown",
			info: &debug.BuildInfo{Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "fedcba9876543210"},
				{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
				{Key: "vcs.modified", Value: "true"},
			}},
			want: "casedesk dev (commit: fedcba9+dirty, built: 2026-10-01T12:00:00Z)",
		},
		{
			name:   "no build info",
			commit: "unknown",
			built:  "unknown",
			info:   nil,
			want:   "casedesk dev (commit: unknown, built: unknown)",
		},
		{
			name:   "short commit kept",
			commit: "abc",
			built:  "unknown",
			info:   &debug.BuildInfo{},
			want:   "casedesk dev (commit: abc, built: unknown)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubBuildInfo(t, tt.info)
			Commit, BuildTime = tt.commit, tt.built

			if got := String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
