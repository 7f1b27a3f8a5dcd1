// Package version provides build-time version information.
package version

import "fmt"

// These variables are set at build time using -ldflags
var (
	// Version is the semantic version
	Version = "0.1.0"

	// BuildTime is the UTC time when the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// String returns a single-line description for window titles and the
// About dialog.
func String() string {
	s := "v" + Version
	if GitCommit != "unknown" {
		s += fmt.Sprintf(" (%s)", GitCommit)
	}
	if BuildTime != "unknown" {
		s += fmt.Sprintf(", built %s", BuildTime)
	}
	return s
}
