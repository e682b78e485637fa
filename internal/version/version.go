// Package version reports build information for the hdkit binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set by -ldflags at release build time.
//
//nolint:gochecknoglobals // ldflags targets
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// Info is the build information shown by `hdkit version`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns build information, filling gaps from the embedded module
// build info when ldflags were not set.
func Get() Info {
	info := Info{
		Version:   NormalizeVersion(Version),
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	return fillFromBuildInfo(info, bi)
}

func fillFromBuildInfo(info Info, bi *debug.BuildInfo) Info {
	if IsDev(info.Version) && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = NormalizeVersion(bi.Main.Version)
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = ShortCommit(s.Value)
			}
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		}
	}
	return info
}

// String renders the one-line form of Info.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "hdkit %s", i.Version)
	if i.Commit != "" {
		fmt.Fprintf(&sb, " (%s)", i.Commit)
	}
	if i.BuildDate != "" {
		fmt.Fprintf(&sb, " built %s", i.BuildDate)
	}
	fmt.Fprintf(&sb, " %s %s", i.GoVersion, i.Platform)
	return sb.String()
}

// IsDev reports whether v names an unreleased build.
func IsDev(v string) bool {
	v = strings.TrimPrefix(v, "v")
	return v == "" || v == "dev" || isCommitHash(v)
}

// NormalizeVersion trims whitespace, any leading 'v', and pre-release or
// build metadata suffixes.
func NormalizeVersion(version string) string {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}
	return strings.TrimLeft(strings.TrimSpace(version), "v")
}

// ShortCommit truncates a commit hash to 7 characters.
func ShortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}

// isCommitHash reports whether s looks like a git hash: 7 to 40 hex
// characters with at least one letter.
func isCommitHash(s string) bool {
	s = strings.TrimSuffix(s, "-dirty")
	if len(s) < 7 || len(s) > 40 {
		return false
	}

	hasLetter := false
	for _, c := range strings.ToLower(s) {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
			hasLetter = true
		default:
			return false
		}
	}
	return hasLetter
}
