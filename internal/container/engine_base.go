// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// VolumeFormatFunc formats a rendered mount argument before it is passed
	// to the runtime. Podman uses this to add SELinux labels to host-path
	// mounts, which SELinux-enforcing systems require before container
	// processes may touch bind-mounted directories.
	VolumeFormatFunc func(volume string) string

	// BaseCLIEngineOption configures a BaseCLIEngine.
	BaseCLIEngineOption func(*BaseCLIEngine)

	// BaseCLIEngine provides the common implementation for CLI-based
	// container engines. Docker and Podman engines embed this struct; methods
	// identical across engines (Run, RunArgs, ListVolumes) live here while
	// engine-specific ones (Available, Version) remain on the concrete types.
	BaseCLIEngine struct {
		name            string // engine name for error messages ("docker", "podman")
		binaryPath      string // resolved at construction via exec.LookPath
		execCommand     ExecCommandFunc
		volumeFormatter VolumeFormatFunc
	}
)

// --- Option Functions ---

// WithName sets the engine name used in error messages.
func WithName(name string) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.name = name
	}
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.execCommand = fn
	}
}

// WithVolumeFormatter sets a custom volume formatter function.
// This is used by Podman to add SELinux labels on Linux.
func WithVolumeFormatter(fn VolumeFormatFunc) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.volumeFormatter = fn
	}
}

// --- Constructor ---

// NewBaseCLIEngine creates a new base engine with the given binary path.
func NewBaseCLIEngine(binaryPath string, opts ...BaseCLIEngineOption) *BaseCLIEngine {
	e := &BaseCLIEngine{
		binaryPath:  binaryPath,
		execCommand: exec.CommandContext,
		// Identity formatter by default
		volumeFormatter: func(v string) string { return v },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// --- Accessor Methods ---

// Name returns the engine name used in error messages.
func (e *BaseCLIEngine) Name() string {
	return e.name
}

// BinaryPath returns the path to the container engine binary.
func (e *BaseCLIEngine) BinaryPath() string {
	return e.binaryPath
}

// --- Argument Builders ---

// RunArgs constructs arguments for a container run command.
// Returns arguments in the order expected by docker/podman run.
//
// Generated command: <binary> run [--rm] [--volume=<spec>]... <image> [command...]
//
// Mount arguments keep their caller-given order and are emitted in the
// single-token --volume= form, so identical options always produce an
// identical argument vector.
func (e *BaseCLIEngine) RunArgs(opts RunOptions) []string {
	args := []string{"run"}

	if opts.Remove {
		args = append(args, "--rm")
	}

	for _, v := range opts.Volumes {
		args = append(args, "--volume="+e.volumeFormatter(v))
	}

	args = append(args, opts.Image)
	args = append(args, opts.Command...)

	return args
}

// VolumeListArgs constructs arguments for listing named volumes.
//
// Generated command: <binary> volume ls --format {{.Name}}
func (e *BaseCLIEngine) VolumeListArgs() []string {
	return []string{"volume", "ls", "--format", "{{.Name}}"}
}

// --- Command Execution ---

// CreateCommand creates an exec.Cmd for the given arguments.
// This is useful when the caller needs to customize stdin/stdout/stderr.
func (e *BaseCLIEngine) CreateCommand(ctx context.Context, args ...string) *exec.Cmd {
	return e.execCommand(ctx, e.binaryPath, args...)
}

// RunCommandWithOutput executes a command with stdout captured to a buffer.
func (e *BaseCLIEngine) RunCommandWithOutput(ctx context.Context, args ...string) (string, error) {
	cmd := e.CreateCommand(ctx, args...)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}

	return out.String(), nil
}

// --- Promoted Engine Methods (shared by Docker and Podman) ---

// Run runs a command in an ephemeral container and reports how it ended.
// A non-zero exit code is captured in RunResult.ExitCode, not returned as an
// error; RunResult.Error carries a LaunchError only when the runtime process
// itself could not be started or waited on.
func (e *BaseCLIEngine) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	args := e.RunArgs(opts)

	cmd := e.CreateCommand(ctx, args...)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	err := cmd.Run()

	result := &RunResult{}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
			result.Error = &LaunchError{Binary: e.binaryPath, Cause: err}
		}
	}

	return result, nil
}

// ListVolumes returns the names of the engine's named volumes, one per
// output line of `volume ls`.
func (e *BaseCLIEngine) ListVolumes(ctx context.Context) ([]string, error) {
	out, err := e.RunCommandWithOutput(ctx, e.VolumeListArgs()...)
	if err != nil {
		return nil, fmt.Errorf("listing volumes: %w", err)
	}

	var names []string
	for line := range strings.SplitSeq(out, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names, nil
}
