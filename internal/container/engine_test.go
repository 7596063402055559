// SPDX-License-Identifier: MPL-2.0

package container

import (
	"errors"
	"strings"
	"testing"
)

func TestEngineNotAvailableError_Error(t *testing.T) {
	t.Parallel()

	err := &EngineNotAvailableError{
		Engine: "podman",
		Reason: "not installed",
	}

	want := `container engine "podman" is not available: not installed`
	if err.Error() != want {
		t.Errorf("EngineNotAvailableError.Error() = %q, want %q", err.Error(), want)
	}
}

func TestEngineNotAvailableError_UnwrapsToSentinel(t *testing.T) {
	t.Parallel()

	var err error = &EngineNotAvailableError{
		Engine: "docker",
		Reason: "not installed",
	}

	if !errors.Is(err, ErrEngineNotAvailable) {
		t.Error("EngineNotAvailableError does not wrap ErrEngineNotAvailable")
	}
}

func TestLaunchError_Error(t *testing.T) {
	t.Parallel()

	cause := errors.New("permission denied")
	err := &LaunchError{
		Binary: "/usr/bin/docker",
		Cause:  cause,
	}

	if !strings.Contains(err.Error(), "/usr/bin/docker") {
		t.Errorf("LaunchError.Error() = %q, missing binary path", err.Error())
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("LaunchError.Error() = %q, missing cause", err.Error())
	}
	if !errors.Is(err, ErrLaunchFailed) {
		t.Error("LaunchError does not wrap ErrLaunchFailed")
	}
}

func TestRuntimeExitError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *RuntimeExitError
		want     string
		wantHint bool
	}{
		{
			name: "plain non-zero exit",
			err:  &RuntimeExitError{Engine: "docker", ExitCode: 2},
			want: "docker exited with status 2",
		},
		{
			name:     "engine error code gets a hint",
			err:      &RuntimeExitError{Engine: "podman", ExitCode: 125},
			want:     "podman exited with status 125",
			wantHint: true,
		},
		{
			name:     "command not found code gets a hint",
			err:      &RuntimeExitError{Engine: "docker", ExitCode: 127},
			want:     "docker exited with status 127",
			wantHint: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg := tt.err.Error()
			if !strings.Contains(msg, tt.want) {
				t.Errorf("RuntimeExitError.Error() = %q, want contains %q", msg, tt.want)
			}
			hasHint := strings.Contains(msg, ": ")
			if hasHint != tt.wantHint {
				t.Errorf("RuntimeExitError.Error() = %q, hint presence = %v, want %v", msg, hasHint, tt.wantHint)
			}
			if !errors.Is(tt.err, ErrRuntimeExit) {
				t.Error("RuntimeExitError does not wrap ErrRuntimeExit")
			}
		})
	}
}

func TestNewEngine_UnknownType(t *testing.T) {
	t.Parallel()

	_, err := NewEngine(EngineType("lxc"))
	if err == nil {
		t.Fatal("NewEngine(lxc) = nil error, want failure")
	}
	if !strings.Contains(err.Error(), "unknown container engine type") {
		t.Errorf("NewEngine(lxc) error = %q, want unknown-type message", err)
	}
}
