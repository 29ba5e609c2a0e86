// Package version exposes build-time version metadata.
// The variables are set via -ldflags at release build time.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version of the build.
	Version = "0.1.0-dev"
	// Commit is the git commit the binary was built from.
	Commit = "unknown"
	// Date is the build timestamp.
	Date = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return Version
}

// Info returns a human-readable version line for CLI output.
func Info() string {
	return fmt.Sprintf("gangway %s (commit %s, built %s, %s)", Version, Commit, Date, runtime.Version())
}

// Map returns version metadata as a map for JSON responses.
func Map() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  Commit,
		"date":    Date,
		"go":      runtime.Version(),
	}
}
