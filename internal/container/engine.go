// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// EngineTypeDocker selects the Docker CLI engine.
	EngineTypeDocker EngineType = "docker"
	// EngineTypePodman selects the Podman CLI engine.
	EngineTypePodman EngineType = "podman"
)

var (
	// ErrInvalidImageTag is the sentinel error wrapped by InvalidImageTagError.
	ErrInvalidImageTag = errors.New("invalid image tag")

	// ErrMissingContextDir is returned when BuildOptions has no build context.
	ErrMissingContextDir = errors.New("build options have no context directory")
)

type (
	// EngineType identifies the container engine type.
	EngineType string

	// ImageTag is a container image reference (name:tag).
	// A valid tag is non-empty and not whitespace-only.
	ImageTag string

	// InvalidImageTagError is returned when an ImageTag is empty or
	// whitespace-only. It wraps ErrInvalidImageTag for errors.Is().
	InvalidImageTagError struct {
		Value ImageTag
	}

	// Engine defines the build-side operations socforge needs from a
	// container runtime.
	Engine interface {
		// Name returns the engine name (docker or podman).
		Name() string
		// Available checks if the engine is usable on this system.
		Available() bool
		// Version returns the engine's server version.
		Version(ctx context.Context) (string, error)
		// Build builds an image from a Dockerfile.
		Build(ctx context.Context, opts BuildOptions) error
		// ImageExists checks if an image tag is present locally.
		ImageExists(ctx context.Context, image ImageTag) (bool, error)
		// RemoveImage removes an image tag.
		RemoveImage(ctx context.Context, image ImageTag, force bool) error
	}

	// BuildOptions contains options for building an image.
	BuildOptions struct {
		// ContextDir is the build context directory.
		ContextDir string
		// Dockerfile is the Dockerfile path, relative to ContextDir unless
		// absolute.
		Dockerfile string
		// Tag is the image tag to apply.
		Tag ImageTag
		// BuildArgs are build-time variables.
		BuildArgs map[string]string
		// NoCache disables the engine's layer cache.
		NoCache bool
		// Stdout receives the engine's build output.
		Stdout io.Writer
		// Stderr receives the engine's build errors.
		Stderr io.Writer
	}

	// ErrEngineNotAvailable is returned when no usable engine is found.
	ErrEngineNotAvailable struct {
		Engine string
		Reason string
	}
)

// Error returns the message for InvalidImageTagError.
func (e *InvalidImageTagError) Error() string {
	return fmt.Sprintf("invalid image tag %q: must be non-empty", string(e.Value))
}

// Unwrap returns ErrInvalidImageTag for errors.Is() compatibility.
func (e *InvalidImageTagError) Unwrap() error {
	return ErrInvalidImageTag
}

// Validate checks the tag is non-empty.
func (t ImageTag) Validate() error {
	if strings.TrimSpace(string(t)) == "" {
		return &InvalidImageTagError{Value: t}
	}
	return nil
}

// Validate checks that the options describe a runnable build.
func (o BuildOptions) Validate() error {
	if strings.TrimSpace(o.ContextDir) == "" {
		return ErrMissingContextDir
	}
	if o.Tag != "" {
		if err := o.Tag.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Error returns the message for ErrEngineNotAvailable.
func (e *ErrEngineNotAvailable) Error() string {
	return fmt.Sprintf("container engine '%s' is not available: %s", e.Engine, e.Reason)
}

// NewEngine creates a container engine based on preference, falling back to
// the other engine when the preferred one is not available.
func NewEngine(preferred EngineType) (Engine, error) {
	switch preferred {
	case EngineTypeDocker:
		docker := NewDockerEngine()
		if docker.Available() {
			return docker, nil
		}
		podman := NewPodmanEngine()
		if podman.Available() {
			return podman, nil
		}
		return nil, &ErrEngineNotAvailable{
			Engine: "docker",
			Reason: "docker is not installed or not accessible, and podman fallback is also not available",
		}

	case EngineTypePodman:
		podman := NewPodmanEngine()
		if podman.Available() {
			return podman, nil
		}
		docker := NewDockerEngine()
		if docker.Available() {
			return docker, nil
		}
		return nil, &ErrEngineNotAvailable{
			Engine: "podman",
			Reason: "podman is not installed or not accessible, and docker fallback is also not available",
		}

	default:
		return nil, fmt.Errorf("unknown container engine type: %s", preferred)
	}
}

// AutoDetectEngine tries to find any available container engine, preferring
// Docker.
func AutoDetectEngine() (Engine, error) {
	docker := NewDockerEngine()
	if docker.Available() {
		return docker, nil
	}

	podman := NewPodmanEngine()
	if podman.Available() {
		return podman, nil
	}

	return nil, &ErrEngineNotAvailable{
		Engine: "any",
		Reason: "no container engine (docker or podman) is available on this system",
	}
}
