// Package version exposes the application version and build metadata.
package version

import (
	_ "embed"
	"fmt"
	"runtime"
	"strings"
)

//go:embed VERSION
var versionFile string

// Build-time variables set via ldflags
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// App returns the current version of pgddl
func App() string {
	return strings.TrimSpace(versionFile)
}

// Platform returns the OS/architecture combination
func Platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// Full returns the one-line version banner, e.g. "pgddl v0.3.0@abc123 linux/amd64 2026-01-02"
func Full() string {
	return fmt.Sprintf("pgddl v%s@%s %s %s", App(), GitCommit, Platform(), BuildDate)
}
