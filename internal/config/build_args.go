package config

import "fmt"

// The following vars are automatically injected via -ldflags.
// See Makefile target "make go-build" and make var $(LDFLAGS).
// No need to change them here.
// https://www.digitalocean.com/community/tutorials/using-ldflags-to-set-version-information-for-go-applications
var (
	// ModuleName (e.g. "github.com/chapool/rosetta-signer") is populated at build time
	ModuleName = "build.local/misses/ldflags"
	// Commit (e.g. "< 40 chars git commit hash >") is populated at build time
	Commit = "< 40 chars git commit hash via ldflags >"
	// BuildDate (e.g. "2020-01-21T17:20:41+00:00") is populated at build time
	BuildDate = "1970-01-01T00:00:00+00:00"
)

// GetFormattedBuildArgs returns the build args as a single line
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
