// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"socforge/internal/container"
	"socforge/internal/recipe"
)

// mockEngine implements container.Engine for testing builder logic without a
// real Docker/Podman.
type mockEngine struct {
	// imageExistsResult controls what ImageExists returns
	imageExistsResult bool
	// imageExistsErr controls the error ImageExists returns
	imageExistsErr error
	// buildErr controls the error Build returns
	buildErr error

	// buildCalls records Build invocations for assertion
	buildCalls []container.BuildOptions
	// imageExistsCalls records ImageExists invocations
	imageExistsCalls []container.ImageTag
}

func newMockEngine() *mockEngine {
	return &mockEngine{
		buildCalls:       make([]container.BuildOptions, 0),
		imageExistsCalls: make([]container.ImageTag, 0),
	}
}

func (m *mockEngine) Name() string    { return "mock" }
func (m *mockEngine) Available() bool { return true }

func (m *mockEngine) Version(_ context.Context) (string, error) {
	return "mock-1.0.0", nil
}

func (m *mockEngine) Build(_ context.Context, opts container.BuildOptions) error {
	m.buildCalls = append(m.buildCalls, opts)
	return m.buildErr
}

func (m *mockEngine) ImageExists(_ context.Context, image container.ImageTag) (bool, error) {
	m.imageExistsCalls = append(m.imageExistsCalls, image)
	return m.imageExistsResult, m.imageExistsErr
}

func (m *mockEngine) RemoveImage(_ context.Context, _ container.ImageTag, _ bool) error {
	return nil
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("flask\n"), 0o600); err != nil {
		t.Fatalf("seed context: %v", err)
	}
	return &Config{
		ImageName:  "socforge/societies-backend",
		ContextDir: dir,
	}
}

func TestImageBuilder_Build(t *testing.T) {
	t.Parallel()

	engine := newMockEngine()
	b := NewImageBuilder(engine, testConfig(t))

	result, err := b.Build(context.Background(), recipe.BackendRecipe())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Cached {
		t.Error("expected a fresh build, got cache hit")
	}
	if result.Cleanup == nil {
		t.Fatal("expected a cleanup function")
	}
	defer result.Cleanup()

	if len(engine.buildCalls) != 1 {
		t.Fatalf("expected 1 build call, got %d", len(engine.buildCalls))
	}

	opts := engine.buildCalls[0]
	if opts.Tag != result.ImageTag {
		t.Errorf("build tag %q != result tag %q", opts.Tag, result.ImageTag)
	}
	if !strings.HasPrefix(string(opts.Tag), "socforge/societies-backend:") {
		t.Errorf("unexpected tag format: %q", opts.Tag)
	}
	if opts.ContextDir != b.Config().ContextDir {
		t.Errorf("expected context dir %q, got %q", b.Config().ContextDir, opts.ContextDir)
	}

	// The rendered Dockerfile lands outside the build context.
	if strings.HasPrefix(opts.Dockerfile, opts.ContextDir) {
		t.Errorf("Dockerfile %q must live outside the context %q", opts.Dockerfile, opts.ContextDir)
	}
	content, err := os.ReadFile(opts.Dockerfile)
	if err != nil {
		t.Fatalf("read rendered Dockerfile: %v", err)
	}
	if !strings.HasPrefix(string(content), "FROM python:3.6\n") {
		t.Errorf("unexpected Dockerfile content:\n%s", content)
	}
}

func TestImageBuilder_Build_CacheHit(t *testing.T) {
	t.Parallel()

	engine := newMockEngine()
	engine.imageExistsResult = true
	b := NewImageBuilder(engine, testConfig(t))

	result, err := b.Build(context.Background(), recipe.BackendRecipe())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Cached {
		t.Error("expected cache hit")
	}
	if len(engine.buildCalls) != 0 {
		t.Errorf("expected no build calls on cache hit, got %d", len(engine.buildCalls))
	}
}

func TestImageBuilder_Build_ForceRebuild(t *testing.T) {
	t.Parallel()

	engine := newMockEngine()
	engine.imageExistsResult = true
	cfg := testConfig(t)
	cfg.ForceRebuild = true
	b := NewImageBuilder(engine, cfg)

	result, err := b.Build(context.Background(), recipe.BackendRecipe())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer result.Cleanup()

	if result.Cached {
		t.Error("force rebuild must not report a cache hit")
	}
	if len(engine.imageExistsCalls) != 0 {
		t.Errorf("force rebuild must skip the exists probe, got %d calls", len(engine.imageExistsCalls))
	}
	if len(engine.buildCalls) != 1 {
		t.Errorf("expected 1 build call, got %d", len(engine.buildCalls))
	}
}

func TestImageBuilder_Build_InvalidRecipe(t *testing.T) {
	t.Parallel()

	engine := newMockEngine()
	b := NewImageBuilder(engine, testConfig(t))

	_, err := b.Build(context.Background(), recipe.Recipe{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(engine.buildCalls) != 0 {
		t.Error("invalid recipe must never reach the engine")
	}
}

func TestImageBuilder_Build_EngineFailure(t *testing.T) {
	t.Parallel()

	engine := newMockEngine()
	engine.buildErr = context.DeadlineExceeded
	b := NewImageBuilder(engine, testConfig(t))

	_, err := b.Build(context.Background(), recipe.BackendRecipe())
	if err == nil {
		t.Fatal("expected engine failure to propagate")
	}
	if !strings.Contains(err.Error(), "failed to build image") {
		t.Errorf("expected build context in error, got %v", err)
	}
}

func TestImageBuilder_Tag_Deterministic(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	b := NewImageBuilder(newMockEngine(), cfg)

	first, err := b.Tag(recipe.BackendRecipe())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := b.Tag(recipe.BackendRecipe())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("tag must be deterministic: %q != %q", first, second)
	}

	// A recipe change produces a different tag.
	changed := recipe.BackendRecipe()
	changed.InstallerVersion = "22.0"
	third, err := b.Tag(changed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third == first {
		t.Error("recipe change must change the tag")
	}
}

func TestImageBuilder_TagSuffix(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.TagSuffix = "test42"
	b := NewImageBuilder(newMockEngine(), cfg)

	tag, err := b.Tag(recipe.BackendRecipe())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(string(tag), "-test42") {
		t.Errorf("expected suffixed tag, got %q", tag)
	}
}

func TestImageBuilder_IsBuilt(t *testing.T) {
	t.Parallel()

	engine := newMockEngine()
	engine.imageExistsResult = true
	b := NewImageBuilder(engine, testConfig(t))

	built, err := b.IsBuilt(context.Background(), recipe.BackendRecipe())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !built {
		t.Error("expected IsBuilt true when the engine reports the tag")
	}
	if len(engine.imageExistsCalls) != 1 {
		t.Fatalf("expected 1 exists probe, got %d", len(engine.imageExistsCalls))
	}
}

func TestCalculateDirHash_ChangesWithContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	first, err := CalculateDirHash(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("two"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	second, err := CalculateDirHash(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("hash must change when the directory gains a file")
	}
}
