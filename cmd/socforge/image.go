// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"socforge/internal/builder"
	"socforge/internal/container"
	"socforge/internal/recipe"

	"github.com/spf13/cobra"
)

var (
	imageRenderOutput string
	imageBuildEngine  string
	imageBuildNoCache bool
	imageBuildForce   bool

	// imageCmd groups the image recipe commands
	imageCmd = &cobra.Command{
		Use:   "image",
		Short: "Render or build the backend's container image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// imageRenderCmd prints or writes the Dockerfile
	imageRenderCmd = &cobra.Command{
		Use:   "render",
		Short: "Render the backend image recipe as a Dockerfile",
		RunE:  runImageRender,
	}

	// imageBuildCmd builds the image through a container engine
	imageBuildCmd = &cobra.Command{
		Use:   "build",
		Short: "Build the backend image via docker or podman",
		Long: `Build the backend image via docker or podman.

The image tag is derived from the recipe and build context contents, so an
unchanged recipe over an unchanged source tree reuses the existing image
instead of rebuilding.`,
		RunE: runImageBuild,
	}
)

func init() {
	imageRenderCmd.Flags().StringVarP(&imageRenderOutput, "output", "o", "", "write the Dockerfile to a file instead of stdout")

	imageBuildCmd.Flags().StringVar(&imageBuildEngine, "engine", "", "container engine to use (docker or podman)")
	imageBuildCmd.Flags().BoolVar(&imageBuildNoCache, "no-cache", false, "disable the engine's layer cache")
	imageBuildCmd.Flags().BoolVar(&imageBuildForce, "force", false, "rebuild even when a cached image exists")

	imageCmd.AddCommand(imageRenderCmd)
	imageCmd.AddCommand(imageBuildCmd)
}

func runImageRender(cmd *cobra.Command, args []string) error {
	r := recipe.BackendRecipe()
	content := r.Dockerfile()

	if imageRenderOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	if err := os.WriteFile(imageRenderOutput, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write Dockerfile: %w", err)
	}
	absPath, _ := filepath.Abs(imageRenderOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "%s Rendered %s\n", SuccessStyle.Render("✓"), absPath)
	return nil
}

// resolveEngine picks the engine from the flag first, then configuration.
func resolveEngine() (container.Engine, error) {
	preferred := imageBuildEngine
	if preferred == "" && cfg != nil {
		preferred = string(cfg.ContainerEngine)
	}
	if preferred == "" {
		return container.AutoDetectEngine()
	}
	return container.NewEngine(container.EngineType(preferred))
}

func runImageBuild(cmd *cobra.Command, args []string) error {
	engine, err := resolveEngine()
	if err != nil {
		return err
	}

	buildCfg := builder.DefaultConfig()
	buildCfg.NoCache = imageBuildNoCache
	buildCfg.ForceRebuild = imageBuildForce
	buildCfg.Output = cmd.OutOrStdout()
	if cfg != nil {
		if cfg.Image.Name != "" {
			buildCfg.ImageName = cfg.Image.Name
		}
		if cfg.Image.ContextDir != "" {
			buildCfg.ContextDir = cfg.Image.ContextDir
		}
	}

	b := builder.NewImageBuilder(engine, buildCfg)

	result, err := b.Build(cmd.Context(), recipe.BackendRecipe())
	if err != nil {
		return err
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	if result.Cached {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Image %s already built, skipping\n",
			WarningStyle.Render("!"), result.ImageTag)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Built %s with %s\n",
		SuccessStyle.Render("✓"), result.ImageTag, engine.Name())
	return nil
}
