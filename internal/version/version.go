// Package version reports the tally build.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via ldflags:
//
//	-X github.com/rnwolfe/tally/internal/version.Version=v1.2.0
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const (
	devVersion = "dev"
	noCommit   = "none"
	noDate     = "unknown"
)

// Full returns "<version> (<commit>) <date>".
func Full() string {
	return fmt.Sprintf("%s (%s) %s", Version, Commit, Date)
}

// Short returns the bare version.
func Short() string {
	return Version
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		fromBuildInfo(info)
	}
}

// fromBuildInfo fills whichever of Version, Commit and Date still hold their
// placeholder, so `go install` builds report something useful. Values set
// with ldflags win.
func fromBuildInfo(info *debug.BuildInfo) {
	if info == nil {
		return
	}
	if Version == devVersion {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			Version = v
		}
	}
	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	if rev := settings["vcs.revision"]; Commit == noCommit && rev != "" {
		Commit = rev[:min(len(rev), 7)]
	}
	if at := settings["vcs.time"]; Date == noDate && at != "" {
		Date = at
	}
}
