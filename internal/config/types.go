// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"socforge/internal/container"
)

const (
	// ContainerEngineDocker uses Docker as the container runtime.
	ContainerEngineDocker ContainerEngine = "docker"
	// ContainerEnginePodman uses Podman as the container runtime.
	ContainerEnginePodman ContainerEngine = "podman"
)

// ErrInvalidContainerEngine is returned when a ContainerEngine value is not recognized.
var ErrInvalidContainerEngine = errors.New("invalid container engine")

type (
	// ContainerEngine specifies which container runtime to use.
	ContainerEngine string

	// InvalidContainerEngineError is returned when a ContainerEngine value
	// is not recognized. It wraps ErrInvalidContainerEngine for errors.Is().
	InvalidContainerEngineError struct {
		Value ContainerEngine
	}

	// EnvFileConfig configures the env file writer.
	EnvFileConfig struct {
		// Path overrides the default target path when set.
		Path string `mapstructure:"path"`
	}

	// ImageConfig configures image rendering and builds.
	ImageConfig struct {
		// Name is the repository part of generated image tags.
		Name string `mapstructure:"name"`
		// ContextDir is the build context directory.
		ContextDir string `mapstructure:"context_dir"`
	}

	// Config is the effective socforge configuration.
	Config struct {
		// ContainerEngine selects docker or podman for image builds.
		ContainerEngine ContainerEngine `mapstructure:"container_engine"`
		// EnvFile configures the env file writer.
		EnvFile EnvFileConfig `mapstructure:"env_file"`
		// Image configures image builds.
		Image ImageConfig `mapstructure:"image"`
		// Verbose enables debug logging.
		Verbose bool `mapstructure:"verbose"`
	}
)

// Error returns the message for InvalidContainerEngineError.
func (e *InvalidContainerEngineError) Error() string {
	return fmt.Sprintf("invalid container engine %q: must be %q or %q",
		string(e.Value), ContainerEngineDocker, ContainerEnginePodman)
}

// Unwrap returns ErrInvalidContainerEngine for errors.Is() compatibility.
func (e *InvalidContainerEngineError) Unwrap() error {
	return ErrInvalidContainerEngine
}

// Validate checks the engine is a recognized value.
func (c ContainerEngine) Validate() error {
	switch c {
	case ContainerEngineDocker, ContainerEnginePodman:
		return nil
	default:
		return &InvalidContainerEngineError{Value: c}
	}
}

// EngineType converts the config value to the container package's type.
func (c ContainerEngine) EngineType() container.EngineType {
	return container.EngineType(c)
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	return c.ContainerEngine.Validate()
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		ContainerEngine: ContainerEngineDocker,
		Image: ImageConfig{
			Name: "socforge/societies-backend",
		},
	}
}
