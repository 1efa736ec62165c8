package utils

import "runtime/debug"

// Set by the build system with -ldflags "-X email-intake/internal/utils.BuildVersion=..."
var BuildVersion = ""

func GetVersion() string {
	if BuildVersion != "" {
		return BuildVersion
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	version := info.Main.Version
	if version == "" {
		// Test binaries carry no main module version
		version = "(devel)"
	}

	// Check if dirty
	for _, setting := range info.Settings {
		if setting.Key == "vcs.modified" && setting.Value == "true" {
			return version + "-dirty"
		}
	}

	return version
}
