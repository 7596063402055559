// SPDX-License-Identifier: MPL-2.0

// Package container abstracts the container runtimes (Docker/Podman) that
// volume backups run through. The runtime binary is the contract: engines
// build an argument vector for `<binary> run`, spawn the process, and report
// how it exited. Nothing talks to a daemon API directly.
//
// DockerEngine and PodmanEngine embed BaseCLIEngine for shared argument
// construction and process execution. Engine selection uses
// NewEngine(EngineType) with automatic fallback if the preferred engine is
// unavailable, or AutoDetectEngine() for preference-less detection (Podman is
// tried first).
package container

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// EngineType identifies the container engine type.
type EngineType string

const (
	EngineTypePodman EngineType = "podman"
	EngineTypeDocker EngineType = "docker"
)

var (
	// ErrEngineNotAvailable is the sentinel error wrapped by EngineNotAvailableError.
	ErrEngineNotAvailable = errors.New("container engine not available")

	// ErrLaunchFailed is the sentinel error wrapped by LaunchError.
	ErrLaunchFailed = errors.New("launching container runtime failed")

	// ErrRuntimeExit is the sentinel error wrapped by RuntimeExitError.
	ErrRuntimeExit = errors.New("container runtime exited with failure")
)

type (
	// Engine is the interface container runtimes are driven through.
	Engine interface {
		// Name returns the engine name (docker or podman).
		Name() string
		// Available checks if the engine is usable on the system.
		Available() bool
		// Version returns the engine version.
		Version(ctx context.Context) (string, error)
		// Run runs a command in an ephemeral container.
		Run(ctx context.Context, opts RunOptions) (*RunResult, error)
		// ListVolumes returns the names of the engine's named volumes.
		ListVolumes(ctx context.Context) ([]string, error)
	}

	// RunOptions describes a single `run` invocation.
	RunOptions struct {
		// Image is the image to run.
		Image string
		// Command is the command to run inside the container.
		Command []string
		// Volumes are mount arguments in rendered "source:target[:mode]" form,
		// passed through in order.
		Volumes []string
		// Remove makes the container clean itself up after exit (--rm).
		Remove bool
		// Stdin is the standard input.
		Stdin io.Reader
		// Stdout is where to write standard output.
		Stdout io.Writer
		// Stderr is where to write standard error.
		Stderr io.Writer
	}

	// RunResult reports how a `run` invocation ended. A non-zero ExitCode
	// means the runtime ran and failed; Error is set only when the process
	// could not be launched or waited on at all.
	RunResult struct {
		ExitCode int
		Error    error
	}

	// EngineNotAvailableError is returned when no usable container engine is
	// found. It wraps ErrEngineNotAvailable for errors.Is() compatibility.
	EngineNotAvailableError struct {
		Engine string
		Reason string
	}

	// LaunchError is returned when the runtime binary cannot be spawned at
	// all (missing binary, permissions). It wraps ErrLaunchFailed for
	// errors.Is() compatibility.
	LaunchError struct {
		Binary string
		Cause  error
	}

	// RuntimeExitError is returned when the runtime ran but exited non-zero.
	// It wraps ErrRuntimeExit for errors.Is() compatibility.
	RuntimeExitError struct {
		Engine   string
		ExitCode int
	}
)

// Error implements the error interface for EngineNotAvailableError.
func (e *EngineNotAvailableError) Error() string {
	return fmt.Sprintf("container engine %q is not available: %s", e.Engine, e.Reason)
}

// Unwrap returns ErrEngineNotAvailable for errors.Is() compatibility.
func (e *EngineNotAvailableError) Unwrap() error { return ErrEngineNotAvailable }

// Error implements the error interface for LaunchError.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("launching %q: %v", e.Binary, e.Cause)
}

// Unwrap returns ErrLaunchFailed for errors.Is() compatibility.
func (e *LaunchError) Unwrap() error { return ErrLaunchFailed }

// Error implements the error interface for RuntimeExitError.
func (e *RuntimeExitError) Error() string {
	if hint := ExitCodeHint(e.ExitCode); hint != "" {
		return fmt.Sprintf("%s exited with status %d: %s", e.Engine, e.ExitCode, hint)
	}
	return fmt.Sprintf("%s exited with status %d", e.Engine, e.ExitCode)
}

// Unwrap returns ErrRuntimeExit for errors.Is() compatibility.
func (e *RuntimeExitError) Unwrap() error { return ErrRuntimeExit }

// NewEngine creates a container engine based on preference, falling back to
// the other engine when the preferred one is unavailable.
func NewEngine(preferredType EngineType) (Engine, error) {
	switch preferredType {
	case EngineTypePodman:
		engine := NewPodmanEngine()
		if engine.Available() {
			return engine, nil
		}
		dockerEngine := NewDockerEngine()
		if dockerEngine.Available() {
			return dockerEngine, nil
		}
		return nil, &EngineNotAvailableError{
			Engine: "podman",
			Reason: "podman is not installed or not accessible, and docker fallback is also not available",
		}

	case EngineTypeDocker:
		engine := NewDockerEngine()
		if engine.Available() {
			return engine, nil
		}
		podmanEngine := NewPodmanEngine()
		if podmanEngine.Available() {
			return podmanEngine, nil
		}
		return nil, &EngineNotAvailableError{
			Engine: "docker",
			Reason: "docker is not installed or not accessible, and podman fallback is also not available",
		}

	default:
		return nil, fmt.Errorf("unknown container engine type: %s", preferredType)
	}
}

// AutoDetectEngine tries to find an available container engine.
func AutoDetectEngine() (Engine, error) {
	// Podman first (more commonly available in rootless setups).
	podman := NewPodmanEngine()
	if podman.Available() {
		return podman, nil
	}

	docker := NewDockerEngine()
	if docker.Available() {
		return docker, nil
	}

	return nil, &EngineNotAvailableError{
		Engine: "any",
		Reason: "no container engine (podman or docker) is available on this system",
	}
}
