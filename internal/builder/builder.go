// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	"socforge/internal/container"
	"socforge/internal/recipe"
)

type (
	// ImageBuilder builds recipe-defined images through a container engine,
	// caching them by content hash.
	ImageBuilder struct {
		engine container.Engine
		config *Config
	}

	// Result contains the output of a build operation.
	Result struct {
		// ImageTag is the tag of the built (or cache-hit) image.
		ImageTag container.ImageTag

		// Cached is true when the tag already existed and no build ran.
		Cached bool

		// Cleanup removes the temporary Dockerfile directory. It does not
		// remove the built image. May be nil when nothing was created.
		Cleanup func()
	}
)

// NewImageBuilder creates an ImageBuilder.
func NewImageBuilder(engine container.Engine, cfg *Config) *ImageBuilder {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &ImageBuilder{
		engine: engine,
		config: cfg,
	}
}

// Config returns the builder's configuration.
func (b *ImageBuilder) Config() *Config {
	return b.config
}

// Build renders the recipe and builds it as an image, unless an image for the
// same recipe and context already exists.
func (b *ImageBuilder) Build(ctx context.Context, r recipe.Recipe) (*Result, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	dockerfile := r.Dockerfile()

	cacheKey, err := b.calculateCacheKey(dockerfile)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate cache key: %w", err)
	}
	tag := b.buildTag(cacheKey[:12])

	if !b.config.ForceRebuild {
		exists, _ := b.engine.ImageExists(ctx, tag) //nolint:errcheck // Error treated as "not found"
		if exists {
			log.Debug("image cache hit", "tag", tag)
			return &Result{ImageTag: tag, Cached: true}, nil
		}
	}

	dockerfilePath, cleanup, err := b.writeDockerfile(dockerfile)
	if err != nil {
		return nil, err
	}

	opts := container.BuildOptions{
		ContextDir: b.config.ContextDir,
		Dockerfile: dockerfilePath,
		Tag:        tag,
		NoCache:    b.config.NoCache,
		Stdout:     b.config.Output,
		Stderr:     b.config.Output,
	}

	log.Debug("building image", "engine", b.engine.Name(), "tag", tag)
	if err := b.engine.Build(ctx, opts); err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to build image %s: %w", tag, err)
	}

	return &Result{ImageTag: tag, Cleanup: cleanup}, nil
}

// Tag returns the tag a build of this recipe would produce, without building.
// Useful for checking whether an image is already cached.
func (b *ImageBuilder) Tag(r recipe.Recipe) (container.ImageTag, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	cacheKey, err := b.calculateCacheKey(r.Dockerfile())
	if err != nil {
		return "", err
	}
	return b.buildTag(cacheKey[:12]), nil
}

// IsBuilt checks whether an image for this recipe and context already exists.
func (b *ImageBuilder) IsBuilt(ctx context.Context, r recipe.Recipe) (bool, error) {
	tag, err := b.Tag(r)
	if err != nil {
		return false, err
	}
	return b.engine.ImageExists(ctx, tag)
}

// buildTag constructs the image tag with the optional suffix.
func (b *ImageBuilder) buildTag(hash string) container.ImageTag {
	if b.config.TagSuffix != "" {
		return container.ImageTag(fmt.Sprintf("%s:%s-%s", b.config.ImageName, hash, b.config.TagSuffix))
	}
	return container.ImageTag(fmt.Sprintf("%s:%s", b.config.ImageName, hash))
}

// calculateCacheKey hashes the rendered Dockerfile together with the build
// context's file metadata.
func (b *ImageBuilder) calculateCacheKey(dockerfile string) (string, error) {
	h := sha256.New()
	h.Write([]byte("dockerfile:" + dockerfile))

	contextHash, err := CalculateDirHash(b.config.ContextDir)
	if err != nil {
		return "", fmt.Errorf("failed to hash build context: %w", err)
	}
	h.Write([]byte("context:" + contextHash))

	return hex.EncodeToString(h.Sum(nil)), nil
}

// writeDockerfile materializes the rendered Dockerfile into a temporary
// directory outside the build context, so the Dockerfile itself never
// invalidates the context hash. The cleanup removes the directory.
func (b *ImageBuilder) writeDockerfile(content string) (path string, cleanup func(), err error) {
	dir, err := os.MkdirTemp("", "socforge-build-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create build dir: %w", err)
	}
	cleanup = func() {
		_ = os.RemoveAll(dir) //nolint:errcheck // Best-effort temp cleanup
	}

	path = filepath.Join(dir, "Dockerfile")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write Dockerfile: %w", err)
	}

	return path, cleanup, nil
}

// CalculateDirHash calculates a hash of a directory's contents.
// It includes file names, sizes, and modification times for efficiency.
func CalculateDirHash(dirPath string) (string, error) {
	h := sha256.New()

	var entries []string
	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Intentionally skip inaccessible files to continue walking
		}
		if info.IsDir() {
			return nil
		}

		relPath, _ := filepath.Rel(dirPath, path)
		entries = append(entries, fmt.Sprintf("%s:%d:%d", relPath, info.Size(), info.ModTime().Unix()))
		return nil
	})
	if err != nil {
		return "", err
	}

	// Sort for consistent ordering
	sort.Strings(entries)

	for _, entry := range entries {
		h.Write([]byte(entry))
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
