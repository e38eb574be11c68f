// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"socforge/internal/config"

	"github.com/spf13/cobra"
)

var (
	// configCmd groups configuration inspection commands
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect socforge configuration",
		Long: `Inspect socforge configuration.

Configuration is stored in:
  - Linux: ~/.config/socforge/config.yaml
  - macOS: ~/Library/Application Support/socforge/config.yaml
  - Windows: %APPDATA%\socforge\config.yaml

Any value can also be set via SOCFORGE_* environment variables, e.g.
SOCFORGE_CONTAINER_ENGINE=podman.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// configShowCmd prints the effective configuration
	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE:  runConfigShow,
	}

	// configPathCmd prints the config file location
	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE:  runConfigPath,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	effective := cfg
	if effective == nil {
		effective = config.DefaultConfig()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render("socforge configuration"))
	fmt.Fprintf(out, "  container_engine:  %s\n", effective.ContainerEngine)
	envPath := effective.EnvFile.Path
	if envPath == "" {
		envPath = SubtitleStyle.Render("(default: src/.env next to the binary)")
	}
	fmt.Fprintf(out, "  env_file.path:     %s\n", envPath)
	fmt.Fprintf(out, "  image.name:        %s\n", effective.Image.Name)
	contextDir := effective.Image.ContextDir
	if contextDir == "" {
		contextDir = SubtitleStyle.Render("(default: current directory)")
	}
	fmt.Fprintf(out, "  image.context_dir: %s\n", contextDir)
	fmt.Fprintf(out, "  verbose:           %t\n", effective.Verbose)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}
