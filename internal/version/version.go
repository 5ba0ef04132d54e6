// Package version provides the build version
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set by the linker: -X github.com/effective-security/xpgp/internal/version.Version=v1.2.3
var (
	Version = "v0.0.0"
	Commit  = ""
)

// Info describes the build
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit,omitempty" yaml:"commit,omitempty"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// Current returns the build version
func Current() Info {
	v := Info{
		Version:   Version,
		Commit:    Commit,
		GoVersion: runtime.Version(),
	}
	if v.Commit == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					v.Commit = s.Value[:7]
				}
			}
		}
	}
	return v
}

func (v Info) String() string {
	if v.Commit == "" {
		return v.Version
	}
	return fmt.Sprintf("%s (%s)", v.Version, v.Commit)
}
