// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride redirects ConfigDir for tests. os.UserHomeDir() does not
// reliably follow the HOME environment variable on every platform (macOS CI
// in particular), so tests point this at a temp directory instead.
var configDirOverride string

// SetConfigDirOverride sets a custom config directory path for tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears test overrides. Call from test cleanup.
func Reset() {
	configDirOverride = ""
}
