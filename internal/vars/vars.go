// Package vars holds build metadata injected at link time.
package vars

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/woozymasta/atlas-packer/internal/vars.Version=..."
var (
	Version = "dev"     // Version is the release tag.
	Commit  = "unknown" // Commit is the VCS revision.
	Date    = "unknown" // Date is the build timestamp.
)

// Print writes build metadata to stdout.
func Print() {
	fmt.Printf("atlas-packer %s\n", Version)
	fmt.Printf("  commit:  %s\n", Commit)
	fmt.Printf("  built:   %s\n", Date)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
