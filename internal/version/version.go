// Package version reports the portctl build version.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Version and Commit are injected at build time:
//
//	go build -ldflags="-X github.com/muurk/portctl/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/portctl/internal/version.Commit=abc1234"
//
// Builds without ldflags fall back to the VCS stamp embedded by the Go toolchain.
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Version == "" || Commit == "" {
		fromBuildInfo()
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

func fromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	var revision, vcsTime string
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			vcsTime = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if Commit == "" && revision != "" {
		if len(revision) > 7 {
			revision = revision[:7]
		}
		Commit = revision
		if dirty {
			Commit += "-dirty"
		}
	}

	// dev-20250101 style when built from a checkout without tags
	if Version == "" && len(vcsTime) >= 10 {
		Version = "dev-" + strings.ReplaceAll(vcsTime[:10], "-", "")
	}
}

// Full returns "version (commit: hash)".
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
