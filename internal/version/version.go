// Package version exposes the build metadata stamped into the Chromaflow
// binary. Release builds inject Version, Commit and Date through
// -ldflags "-X chromaflow/internal/version.Version=x.y.z" and friends; a
// plain go build reports dev.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is a snapshot of the build metadata, JSON-tagged for the version
// command's --json output.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build metadata of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the one-line form the version command prints. Builds
// without stamped metadata fall back to the short form.
func String() string {
	info := Get()
	if info.Commit == "unknown" || info.Date == "unknown" {
		return fmt.Sprintf("chromaflow version %s (%s, %s)", info.Version, info.GoVersion, info.Platform)
	}

	commit := info.Commit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return fmt.Sprintf("chromaflow version %s (commit: %s, built: %s, %s, %s)",
		info.Version, commit, info.Date, info.GoVersion, info.Platform)
}

// Short returns the bare version for cobra's --version flag.
func Short() string {
	return Version
}
