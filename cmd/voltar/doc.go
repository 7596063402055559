// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for voltar.
//
// This package implements the Cobra command hierarchy for the voltar CLI:
// the root command plus subcommands for backing up and restoring container
// volumes, inspecting backup archives, listing engine volumes, and managing
// configuration.
package cmd
