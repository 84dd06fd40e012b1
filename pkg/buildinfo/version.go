// Package buildinfo reports which build of devbuilds is running.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/typst-community/dev-builds/pkg/buildinfo.Version=v0.2.0 \
//	    -X github.com/typst-community/dev-builds/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/typst-community/dev-builds/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/devbuilds
//
// Builds made with go install carry no ldflags; [Resolve] then falls back to
// the module version and VCS stamp embedded by the Go toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the release version, "dev" for local builds.
	Version = "dev"
	// Commit is the abbreviated commit the binary was built from.
	Commit = "none"
	// Date is the build time in RFC 3339.
	Date = "unknown"
)

// Info is a snapshot of the build variables.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Resolve returns the build information, filling unset values from the
// toolchain's embedded build info when available.
func Resolve() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = fromBuildInfo(info, bi)
	}
	return info
}

func fromBuildInfo(info Info, bi *debug.BuildInfo) Info {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" && len(s.Value) >= 7 {
				info.Commit = s.Value[:7]
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = s.Value
			}
		}
	}
	return info
}

// String returns the build information on three lines.
func (i Info) String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, i.Commit, i.Date)
}

// Template returns the cobra version template.
func Template() string {
	i := Resolve()
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", i.Version, i.Commit, i.Date)
}
