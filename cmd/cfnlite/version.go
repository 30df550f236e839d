package main

import "runtime/debug"

// version is injected at release time: -ldflags "-X main.version=v1.2.3".
var version = ""

// getVersion resolves the version to report: the ldflags value when one was
// injected, the module version recorded by "go install <mod>@<version>"
// otherwise, and "dev" for plain source builds.
func getVersion() string {
	if version != "" {
		return version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}

	return "dev"
}
