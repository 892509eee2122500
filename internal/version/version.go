// Package version holds the build version of coderecon.
package version

// Overridden at build time:
// go build -ldflags "-X coderecon/internal/version.Version=0.2.0 -X coderecon/internal/version.Commit=abc123"
var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info returns the version with a short commit suffix when one is known.
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}

// Full returns the multi-line version banner.
func Full() string {
	return "coderecon " + Version + "\n" +
		"commit: " + Commit + "\n" +
		"built: " + BuildDate
}
