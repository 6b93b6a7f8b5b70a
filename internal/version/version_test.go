package version

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("Platform = %q, want os/arch form", info.Platform)
	}
	if !strings.HasPrefix(info.GoVersion, "go") {
		t.Errorf("GoVersion = %q, want go prefix", info.GoVersion)
	}
}

func TestStringUnstamped(t *testing.T) {
	got := String()

	if !strings.HasPrefix(got, "chromaflow version ") {
		t.Errorf("String() = %q, want chromaflow version prefix", got)
	}
	if strings.Contains(got, "commit:") {
		t.Errorf("String() = %q, want no commit for unstamped build", got)
	}
}

func TestStringStamped(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version = "1.2.3"
	Commit = "0123456789abcdef"
	Date = "2025-06-01T00:00:00Z"

	got := String()
	for _, want := range []string{"1.2.3", "commit: 01234567", "built: 2025-06-01T00:00:00Z"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}

func TestStringShortCommit(t *testing.T) {
	defer func(c, d string) { Commit, Date = c, d }(Commit, Date)
	Commit = "abc"
	Date = "2025-06-01T00:00:00Z"

	if got := String(); !strings.Contains(got, "commit: abc,") {
		t.Errorf("String() = %q, want short commit passed through", got)
	}
}
