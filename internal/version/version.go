// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

// Package version reports which schema-infer build is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build metadata, overridable with -ldflags "-X".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
	Module  = "github.com/akrishnanDG/schema-infer-plugin"
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		apply(info)
	}
}

// apply fills every value still at its placeholder from the module build
// info. Values injected through ldflags win.
func apply(info *debug.BuildInfo) {
	if info.Main.Path != "" {
		Module = info.Main.Path
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" && len(s.Value) >= 7 {
				Commit = s.Value[:7]
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = s.Value
			}
		}
	}
}

// Info returns the full build description shown by `schema-infer version`.
func Info() string {
	return fmt.Sprintf("schema-infer version %s (%s, commit: %s, built: %s, go: %s)",
		Version, Module, Commit, Date, runtime.Version())
}

// Short returns just the version string.
func Short() string {
	return Version
}
