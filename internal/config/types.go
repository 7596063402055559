// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ContainerEnginePodman uses Podman as the container runtime.
	ContainerEnginePodman ContainerEngine = "podman"
	// ContainerEngineDocker uses Docker as the container runtime.
	ContainerEngineDocker ContainerEngine = "docker"
	// ContainerEngineAuto picks whichever engine is available, Podman first.
	ContainerEngineAuto ContainerEngine = "auto"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultImage is the helper image used for backup containers when no
	// image is configured. Anything with a gzip-capable tar works.
	DefaultImage ImageRef = "alpine"
)

var (
	// ErrInvalidContainerEngine is returned when a ContainerEngine value is not recognized.
	ErrInvalidContainerEngine = errors.New("invalid container engine")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidImageRef is returned when an ImageRef value is whitespace-only.
	ErrInvalidImageRef = errors.New("invalid image reference")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ContainerEngine specifies which container runtime to use.
	ContainerEngine string

	// InvalidContainerEngineError is returned when a ContainerEngine value is not recognized.
	// It wraps ErrInvalidContainerEngine for errors.Is() compatibility.
	InvalidContainerEngineError struct {
		Value ContainerEngine
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// ImageRef is a container image reference for the helper container.
	// The zero value ("") is valid and means "use the default image".
	// Non-zero values must not be whitespace-only.
	ImageRef string

	// InvalidImageRefError is returned when an ImageRef value is
	// non-empty but whitespace-only.
	InvalidImageRefError struct {
		Value ImageRef
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Engine specifies whether to use "podman", "docker", or "auto"
		Engine ContainerEngine `json:"engine" toml:"engine" mapstructure:"engine"`
		// Image is the helper image for backup containers
		Image ImageRef `json:"image" toml:"image" mapstructure:"image"`
		// UI configures the user interface
		UI UIConfig `json:"ui" toml:"ui" mapstructure:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" toml:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" toml:"verbose" mapstructure:"verbose"`
	}
)

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Engine.IsValid(), Image.IsValid(), and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Engine.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Image.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface for InvalidContainerEngineError.
func (e *InvalidContainerEngineError) Error() string {
	return fmt.Sprintf("invalid container engine %q (valid: podman, docker, auto)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidContainerEngineError) Unwrap() error {
	return ErrInvalidContainerEngine
}

// String returns the string representation of the ContainerEngine.
func (ce ContainerEngine) String() string { return string(ce) }

// IsValid returns whether the ContainerEngine is one of the defined engine types,
// and a list of validation errors if it is not.
func (ce ContainerEngine) IsValid() (bool, []error) {
	switch ce {
	case ContainerEnginePodman, ContainerEngineDocker, ContainerEngineAuto:
		return true, nil
	default:
		return false, []error{&InvalidContainerEngineError{Value: ce}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// String returns the string representation of the ImageRef.
func (r ImageRef) String() string { return string(r) }

// IsValid returns whether the ImageRef is valid.
// The zero value ("") is valid (means "use the default image").
// Non-zero values must not be whitespace-only.
func (r ImageRef) IsValid() (bool, []error) {
	if r == "" {
		return true, nil
	}
	if strings.TrimSpace(string(r)) == "" {
		return false, []error{&InvalidImageRefError{Value: r}}
	}
	return true, nil
}

// OrDefault returns the image reference, falling back to DefaultImage for
// the zero value.
func (r ImageRef) OrDefault() ImageRef {
	if r == "" {
		return DefaultImage
	}
	return r
}

// Error implements the error interface for InvalidImageRefError.
func (e *InvalidImageRefError) Error() string {
	return fmt.Sprintf("invalid image reference %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidImageRef for errors.Is() compatibility.
func (e *InvalidImageRefError) Unwrap() error { return ErrInvalidImageRef }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Engine: ContainerEngineAuto,
		Image:  DefaultImage,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
