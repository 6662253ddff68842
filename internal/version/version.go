// Package version carries build metadata. Commit and BuildDate are set
// with -ldflags at release time.
package version

import (
	"runtime"
	"strings"
)

var (
	Version   = "0.3.0"
	Commit    = ""
	BuildDate = ""
)

// Summary renders a single line such as
// "bareshell 0.3.0 (commit abc123, built 2024-05-01) go1.22.3 linux/amd64".
// Build fields that were not stamped are left out.
func Summary() string {
	var b strings.Builder
	b.WriteString("bareshell ")
	b.WriteString(Version)

	var build []string
	if Commit != "" {
		build = append(build, "commit "+Commit)
	}
	if BuildDate != "" {
		build = append(build, "built "+BuildDate)
	}
	if len(build) > 0 {
		b.WriteString(" (" + strings.Join(build, ", ") + ")")
	}

	b.WriteString(" " + runtime.Version() + " " + runtime.GOOS + "/" + runtime.GOARCH)
	return b.String()
}
