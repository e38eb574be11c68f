// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"socforge/internal/envfile"

	"github.com/spf13/cobra"
)

var (
	envShowReveal bool

	// envCmd groups the env file writer commands
	envCmd = &cobra.Command{
		Use:   "env",
		Short: "Manage the backend's .env file",
		Long: `Manage the backend's .env file.

The file holds the backend's secrets and broker endpoints, read from the
invoking environment at creation time. It is written exactly once: an
existing file is never overwritten, no matter what it contains.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// envCreateCmd writes the env file if absent
	envCreateCmd = &cobra.Command{
		Use:   "create [path]",
		Short: "Write the .env file unless it already exists",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnvCreate,
	}

	// envShowCmd prints an existing env file
	envShowCmd = &cobra.Command{
		Use:   "show [path]",
		Short: "Print the pairs of an existing .env file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnvShow,
	}
)

func init() {
	envShowCmd.Flags().BoolVar(&envShowReveal, "reveal", false, "print values instead of masking them")

	envCmd.AddCommand(envCreateCmd)
	envCmd.AddCommand(envShowCmd)
}

// resolveEnvPath picks the target path: explicit argument first, then the
// configured path, then the conventional location next to the binary.
func resolveEnvPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg != nil && cfg.EnvFile.Path != "" {
		return cfg.EnvFile.Path, nil
	}
	return envfile.DefaultPath()
}

func runEnvCreate(cmd *cobra.Command, args []string) error {
	path, err := resolveEnvPath(args)
	if err != nil {
		return err
	}

	result, err := envfile.EnsureFile(path, envfile.BackendSchema(), envfile.OSSource())
	if err != nil {
		return err
	}

	absPath, _ := filepath.Abs(result.Path)
	if result.Outcome == envfile.OutcomeSkipped {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s already exists, leaving it untouched\n",
			WarningStyle.Render("!"), absPath)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	return nil
}

func runEnvShow(cmd *cobra.Command, args []string) error {
	path, err := resolveEnvPath(args)
	if err != nil {
		return err
	}

	pairs, err := envfile.Read(path)
	if err != nil {
		return err
	}

	// Schema order, not map order
	for _, key := range envfile.BackendSchema() {
		value := pairs[string(key)]
		if !envShowReveal && value != "" {
			value = strings.Repeat("*", 8)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, value)
	}
	return nil
}
