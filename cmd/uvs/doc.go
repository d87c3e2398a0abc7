// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for uvs.
//
// This package implements the Cobra command hierarchy for the uvs CLI: the
// root command that runs scripts defined in pyproject.toml, the script
// listing, and shell completion.
package cmd
