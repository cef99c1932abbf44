// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/cargo-info/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/cargo-info/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/cargo-info/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// homepage is sent in the User-Agent so registry operators can reach us.
const homepage = "https://github.com/matzehuels/cargo-info"

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent identifies this build to the registry, e.g.
// "cargo-info/v1.2.3 (https://github.com/matzehuels/cargo-info)".
func UserAgent() string {
	return fmt.Sprintf("cargo-info/%s (%s)", Version, homepage)
}
