// Package buildinfo carries version stamps set with -ldflags -X.
package buildinfo

import "runtime/debug"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for titles and logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if c := commit(); c != "" {
		return c
	}
	return "dev"
}

// commit falls back to the VCS revision Go embeds when Commit was not set.
func commit() string {
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}

// Long adds the commit and build date to Short.
func Long() string {
	c := commit()
	if c == "" {
		c = "unknown"
	}
	return Short() + " (commit " + c + ", built " + Date + ")"
}
