// Package version carries build metadata stamped in with -ldflags.
package version

import "fmt"

// Set at build time:
//
//	go build -ldflags "-X github.com/banshee-data/axisgrid/internal/version.Version=v0.3.0"
var (
	Version   = "dev"
	GitSHA    = "unknown"
	BuildTime = "unknown"
)

// String formats the build metadata for `axisgrid version` and /health.
func String() string {
	sha := GitSHA
	if len(sha) > 12 {
		sha = sha[:12]
	}
	return fmt.Sprintf("axisgrid %s (%s, built %s)", Version, sha, BuildTime)
}
