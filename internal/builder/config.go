// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"io"
	"os"
)

type (
	// Config holds configuration for image builds.
	Config struct {
		// ImageName is the repository part of generated tags.
		// Default: socforge/societies-backend
		ImageName string

		// ContextDir is the build context (the backend source tree).
		// Default: current directory.
		ContextDir string

		// ForceRebuild bypasses the cached image check.
		ForceRebuild bool

		// NoCache disables the engine's layer cache.
		NoCache bool

		// TagSuffix is an optional suffix appended to generated tags.
		// This enables test isolation by making each test's images unique.
		// Can be set via SOCFORGE_BUILD_TAG_SUFFIX.
		TagSuffix string

		// Output receives the engine's build output. Nil discards it.
		Output io.Writer
	}
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	contextDir, err := os.Getwd()
	if err != nil {
		contextDir = "."
	}

	return &Config{
		ImageName:  "socforge/societies-backend",
		ContextDir: contextDir,
		TagSuffix:  os.Getenv("SOCFORGE_BUILD_TAG_SUFFIX"),
	}
}
