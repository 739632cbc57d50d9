// Package version reports the build version of the viceversion binary.
package version

import "runtime/debug"

// version is set at build time with
// -ldflags "-X github.com/indaco/viceversion/internal/version.version=v1.2.3".
var version = ""

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the linker-provided version, falling back to the module
// version recorded by "go install", then to "devel".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "devel"
}
