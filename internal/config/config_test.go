// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"socforge/internal/container"
)

// Config loading mutates package-level overrides, so these tests are not
// parallel.

func TestLoad_Defaults(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	defer Reset()

	cfg, resolvedPath, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolvedPath != "" {
		t.Errorf("expected no resolved config file, got %q", resolvedPath)
	}
	if cfg.ContainerEngine != ContainerEngineDocker {
		t.Errorf("expected docker default, got %q", cfg.ContainerEngine)
	}
	if cfg.Image.Name != "socforge/societies-backend" {
		t.Errorf("unexpected default image name %q", cfg.Image.Name)
	}
	if cfg.Verbose {
		t.Error("verbose must default to false")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer Reset()

	content := "container_engine: podman\nenv_file:\n  path: /srv/backend/.env\nimage:\n  name: registry.local/backend\n"
	filePath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(filePath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolvedPath, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolvedPath != filePath {
		t.Errorf("expected resolved path %q, got %q", filePath, resolvedPath)
	}
	if cfg.ContainerEngine != ContainerEnginePodman {
		t.Errorf("expected podman, got %q", cfg.ContainerEngine)
	}
	if cfg.EnvFile.Path != "/srv/backend/.env" {
		t.Errorf("expected env file path from config, got %q", cfg.EnvFile.Path)
	}
	if cfg.Image.Name != "registry.local/backend" {
		t.Errorf("expected image name from config, got %q", cfg.Image.Name)
	}
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	defer Reset()

	filePath := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(filePath, []byte("verbose: true\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigFilePathOverride(filePath)

	cfg, resolvedPath, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolvedPath != filePath {
		t.Errorf("expected resolved path %q, got %q", filePath, resolvedPath)
	}
	if !cfg.Verbose {
		t.Error("expected verbose from explicit config file")
	}
}

func TestLoad_ExplicitConfigFileMissing(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	defer Reset()

	SetConfigFilePathOverride(filepath.Join(t.TempDir(), "nope.yaml"))

	if _, _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidEngine(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer Reset()

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("container_engine: lxc\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, err := Load()
	if !errors.Is(err, ErrInvalidContainerEngine) {
		t.Fatalf("expected ErrInvalidContainerEngine, got %v", err)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	defer Reset()

	t.Setenv("SOCFORGE_CONTAINER_ENGINE", "podman")

	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ContainerEngine != ContainerEnginePodman {
		t.Errorf("expected env override to podman, got %q", cfg.ContainerEngine)
	}
}

func TestContainerEngine_Validate(t *testing.T) {
	t.Parallel()

	for _, engine := range []ContainerEngine{ContainerEngineDocker, ContainerEnginePodman} {
		if err := engine.Validate(); err != nil {
			t.Errorf("engine %q: unexpected error: %v", engine, err)
		}
	}

	err := ContainerEngine("lxc").Validate()
	if !errors.Is(err, ErrInvalidContainerEngine) {
		t.Fatalf("expected ErrInvalidContainerEngine, got %v", err)
	}
	var engineErr *InvalidContainerEngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected InvalidContainerEngineError, got %T", err)
	}
}

func TestContainerEngine_EngineType(t *testing.T) {
	t.Parallel()

	if ContainerEngineDocker.EngineType() != container.EngineTypeDocker {
		t.Error("docker config value must map to the docker engine type")
	}
	if ContainerEnginePodman.EngineType() != container.EngineTypePodman {
		t.Error("podman config value must map to the podman engine type")
	}
}
