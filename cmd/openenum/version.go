package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version reports the module version of installed binaries (e.g. "v0.1.0")
// and "devel-0.1.0+abc1234" for builds from a checkout, with "-dirty"
// appended when the tree had local modifications.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	return version(strings.TrimSpace(embeddedVersion), info, ok)
}

func version(base string, info *debug.BuildInfo, ok bool) string {
	if !ok {
		return base
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	v := "devel-" + base
	settings := make(map[string]string)
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	if rev := settings["vcs.revision"]; len(rev) >= 7 {
		v += "+" + rev[:7]
		if settings["vcs.modified"] == "true" {
			v += "-dirty"
		}
	}
	return v
}
