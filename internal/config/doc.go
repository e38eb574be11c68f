// SPDX-License-Identifier: MPL-2.0

// Package config loads socforge's CLI configuration.
//
// Configuration comes from three layers, lowest precedence first: built-in
// defaults, a YAML config file in the platform config directory (or an
// explicit --config path), and SOCFORGE_* environment variables. A missing
// config file is not an error; defaults apply.
package config
