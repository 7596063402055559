// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as the file format.
//
// Configuration is loaded from ~/.config/voltar/config.toml (or XDG equivalent on Linux,
// ~/Library/Application Support/voltar/config.toml on macOS, %APPDATA%\voltar\config.toml
// on Windows). The package provides type-safe configuration access covering container
// engine selection, the helper image, and UI settings.
package config
