package version

import (
	"runtime"
	"strings"
	"testing"
)

func withVersion(t *testing.T, v, c, d string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = v, c, d
	t.Cleanup(func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	})
}

func TestGetInfo(t *testing.T) {
	withVersion(t, "1.0.0", "abc123def456", "2026-01-01T12:00:00Z")

	info := GetInfo()
	if info.Version != "1.0.0" || info.Commit != "abc123def456" {
		t.Errorf("unexpected info %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %v, want %v", info.GoVersion, runtime.Version())
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("unexpected platform %s", info.Platform)
	}
}

func TestInfoString(t *testing.T) {
	withVersion(t, "1.0.0", "abc123def456", "2026-01-01")

	s := GetInfo().String()
	if !strings.HasPrefix(s, "staffdesk 1.0.0 (abc123de)") {
		t.Errorf("unexpected string %q", s)
	}

	withVersion(t, "dev", "abc", "unknown")
	if !strings.Contains(GetInfo().String(), "(abc)") {
		t.Error("short commits should not be truncated")
	}
}

func TestUserAgent(t *testing.T) {
	withVersion(t, "2.1.0", "x", "y")
	if ua := GetInfo().UserAgent(); !strings.HasPrefix(ua, "staffdesk/2.1.0 (") {
		t.Errorf("unexpected user agent %q", ua)
	}
}
