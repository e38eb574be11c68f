// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for socforge.
//
// This package implements the Cobra command hierarchy for the socforge CLI:
// the root command, the env file writer commands, the image recipe commands,
// and configuration inspection.
package cmd
