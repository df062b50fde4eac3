// Package version reports which build of pmrt is running.
//
// Release builds stamp the values with ldflags:
//
//	go build -ldflags "-X github.com/jmylchreest/pmrt/internal/version.Version=1.2.0 ..."
//
// Anything left unstamped is filled from the module and VCS information the
// go tool embeds, so `go install` builds still report their commit.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

// Set via ldflags.
var (
	Version   = "dev"
	Commit    = ""
	Dirty     = ""
	BuildDate = ""
)

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Dirty     bool   `json:"dirty"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

var current = sync.OnceValue(func() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi)
})

// resolve merges the ldflags values with the embedded build info, which
// may be nil.
func resolve(bi *debug.BuildInfo) Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Dirty:     Dirty == "true",
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi != nil {
		if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = strings.TrimPrefix(bi.Main.Version, "v")
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.BuildDate == "" {
					info.BuildDate = s.Value
				}
			case "vcs.modified":
				if Dirty == "" {
					info.Dirty = s.Value == "true"
				}
			}
		}
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.BuildDate == "" {
		info.BuildDate = "unknown"
	}
	return info
}

// Get returns the build information.
func Get() Info {
	return current()
}

// String returns the version of the running build.
func String() string {
	return Get().String()
}

// String returns the version, marked when built from a modified tree.
func (i Info) String() string {
	if i.Dirty {
		return i.Version + "-dirty"
	}
	return i.Version
}

// Full returns the multi-line description printed by `pmrt version`.
func Full() string {
	i := Get()
	commit := i.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "pmrt %s\n", i)
	fmt.Fprintf(&sb, "  commit  %s\n", commit)
	fmt.Fprintf(&sb, "  built   %s\n", i.BuildDate)
	fmt.Fprintf(&sb, "  go      %s %s\n", i.GoVersion, i.Platform)
	return sb.String()
}
