// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// This package defines error types that include remediation steps and a catalog
// of Markdown-formatted guidance for the failure modes of backup and restore
// operations, rendered in the terminal when errors occur.
package issue
