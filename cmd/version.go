// Package cmd holds build metadata for the edmx binary. The values are
// replaced at link time, e.g.
//
//	go build -ldflags "-X github.com/thoreinstein/edmx/cmd.Version=v1.2.0" ./cmd/edmx
package cmd

var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
