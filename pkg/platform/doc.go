// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// This package centralizes platform-specific concerns such as the OS name
// constants used to pick per-platform configuration directories.
package platform
