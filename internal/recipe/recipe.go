// SPDX-License-Identifier: MPL-2.0

package recipe

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingBaseImage is returned when a Recipe has no base image.
	ErrMissingBaseImage = errors.New("recipe has no base image")

	// ErrMissingWorkDir is returned when a Recipe has no working directory.
	ErrMissingWorkDir = errors.New("recipe has no working directory")

	// ErrInvalidEnvEntry is the sentinel error wrapped by InvalidEnvEntryError.
	ErrInvalidEnvEntry = errors.New("invalid recipe env entry")
)

type (
	// EnvEntry is a single build-time environment variable declaration.
	// Entries are ordered; each renders as its own ENV instruction.
	EnvEntry struct {
		Name  string
		Value string
	}

	// InvalidEnvEntryError is returned when an EnvEntry name is empty or
	// contains characters that would break the rendered instruction.
	InvalidEnvEntryError struct {
		Value EnvEntry
	}

	// MirrorSubstitution repoints the base image's package mirror before any
	// package installation runs. Empty From/To means no substitution step.
	MirrorSubstitution struct {
		// SourcesFile is the package sources list inside the image.
		SourcesFile string
		// From is the mirror host to replace.
		From string
		// To is the replacement mirror host.
		To string
	}

	// Recipe is the ordered, declarative build plan for the backend image.
	Recipe struct {
		// BaseImage is the FROM image reference.
		BaseImage string
		// Maintainer renders as a LABEL maintainer annotation when set.
		Maintainer string
		// Env are build-time environment declarations, in order.
		Env []EnvEntry
		// Mirror optionally repoints the package mirror.
		Mirror MirrorSubstitution
		// InstallerPackage is the package manager to pin (e.g. "pip").
		InstallerPackage string
		// InstallerVersion pins the package manager version. Empty skips
		// the pin step.
		InstallerVersion string
		// WorkDir is the image working directory holding the application.
		WorkDir string
		// ManifestFile is the dependency manifest copied ahead of the full
		// source tree so dependency installation caches independently.
		ManifestFile string
		// InstallCommand installs dependencies from the manifest.
		InstallCommand string
	}
)

// Error returns the message for InvalidEnvEntryError.
func (e *InvalidEnvEntryError) Error() string {
	return fmt.Sprintf("invalid recipe env entry %q: name must be non-empty without whitespace or '='", e.Value.Name)
}

// Unwrap returns ErrInvalidEnvEntry for errors.Is() compatibility.
func (e *InvalidEnvEntryError) Unwrap() error {
	return ErrInvalidEnvEntry
}

// Validate checks the entry renders as a well-formed ENV instruction.
func (e EnvEntry) Validate() error {
	if e.Name == "" || strings.ContainsAny(e.Name, " \t\n=") {
		return &InvalidEnvEntryError{Value: e}
	}
	return nil
}

// Validate checks the recipe has the required fields and well-formed entries.
func (r Recipe) Validate() error {
	if strings.TrimSpace(r.BaseImage) == "" {
		return ErrMissingBaseImage
	}
	if strings.TrimSpace(r.WorkDir) == "" {
		return ErrMissingWorkDir
	}
	for _, e := range r.Env {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// BackendRecipe returns the fixed build plan for the societies backend image.
func BackendRecipe() Recipe {
	return Recipe{
		BaseImage:  "python:3.6",
		Maintainer: "societies-dev@andela.com",
		Env: []EnvEntry{
			{Name: "TERM", Value: "xterm"},
		},
		Mirror: MirrorSubstitution{
			SourcesFile: "/etc/apt/sources.list",
			From:        "deb.debian.org",
			To:          "archive.debian.org",
		},
		InstallerPackage: "pip",
		InstallerVersion: "21.3.1",
		WorkDir:          "/app",
		ManifestFile:     "requirements.txt",
		InstallCommand:   "pip install -r requirements.txt",
	}
}
