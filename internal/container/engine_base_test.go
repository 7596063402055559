// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"slices"
	"strings"
	"testing"
)

func TestBaseCLIEngine_RunArgs(t *testing.T) {
	t.Parallel()

	engine := NewBaseCLIEngine("/usr/bin/docker")

	tests := []struct {
		name string
		opts RunOptions
		want []string
	}{
		{
			name: "backup invocation",
			opts: RunOptions{
				Image:  "alpine",
				Remove: true,
				Volumes: []string{
					"/backups:/output",
					"vol-a:/input/vol-a:ro",
					"vol-b:/input/vol-b:ro",
				},
				Command: []string{"tar", "-czf", "/output/vols.tar.gz", "-C", "/input", "."},
			},
			want: []string{
				"run", "--rm",
				"--volume=/backups:/output",
				"--volume=vol-a:/input/vol-a:ro",
				"--volume=vol-b:/input/vol-b:ro",
				"alpine",
				"tar", "-czf", "/output/vols.tar.gz", "-C", "/input", ".",
			},
		},
		{
			name: "restore invocation",
			opts: RunOptions{
				Image:  "alpine",
				Remove: true,
				Volumes: []string{
					"/backups:/input",
					"vol-a:/output/vol-a:rw",
				},
				Command: []string{"tar", "-xzf", "/input/vols.tar.gz", "-C", "/output"},
			},
			want: []string{
				"run", "--rm",
				"--volume=/backups:/input",
				"--volume=vol-a:/output/vol-a:rw",
				"alpine",
				"tar", "-xzf", "/input/vols.tar.gz", "-C", "/output",
			},
		},
		{
			name: "minimal run without rm",
			opts: RunOptions{
				Image:   "alpine",
				Command: []string{"true"},
			},
			want: []string{"run", "alpine", "true"},
		},
		{
			name: "volume order is caller order",
			opts: RunOptions{
				Image:   "alpine",
				Remove:  true,
				Volumes: []string{"zeta:/input/zeta:ro", "alpha:/input/alpha:ro", "mid:/input/mid:ro"},
			},
			want: []string{
				"run", "--rm",
				"--volume=zeta:/input/zeta:ro",
				"--volume=alpha:/input/alpha:ro",
				"--volume=mid:/input/mid:ro",
				"alpine",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := engine.RunArgs(tt.opts)
			if !slices.Equal(got, tt.want) {
				t.Errorf("RunArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBaseCLIEngine_RunArgsAppliesVolumeFormatter(t *testing.T) {
	t.Parallel()

	engine := NewBaseCLIEngine("/usr/bin/podman",
		WithVolumeFormatter(func(v string) string { return v + ":z" }))

	got := engine.RunArgs(RunOptions{
		Image:   "alpine",
		Volumes: []string{"/data:/output", "vol-a:/input/vol-a"},
	})
	want := []string{"run", "--volume=/data:/output:z", "--volume=vol-a:/input/vol-a:z", "alpine"}
	if !slices.Equal(got, want) {
		t.Errorf("RunArgs() = %v, want %v", got, want)
	}
}

func TestBaseCLIEngine_VolumeListArgs(t *testing.T) {
	t.Parallel()

	engine := NewBaseCLIEngine("/usr/bin/docker")

	got := engine.VolumeListArgs()
	want := []string{"volume", "ls", "--format", "{{.Name}}"}
	if !slices.Equal(got, want) {
		t.Errorf("VolumeListArgs() = %v, want %v", got, want)
	}
}

func TestBaseCLIEngine_DefaultOptions(t *testing.T) {
	t.Parallel()

	engine := NewBaseCLIEngine("/usr/bin/docker")

	if engine.BinaryPath() != "/usr/bin/docker" {
		t.Errorf("BinaryPath() = %q, want %q", engine.BinaryPath(), "/usr/bin/docker")
	}
	// Default formatter is identity.
	if got := engine.volumeFormatter("a:/b:ro"); got != "a:/b:ro" {
		t.Errorf("default volumeFormatter(%q) = %q, want unchanged", "a:/b:ro", got)
	}
	if engine.execCommand == nil {
		t.Error("default execCommand is nil")
	}
}

func TestBaseCLIEngine_Run_Success(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	engine := NewBaseCLIEngine("/usr/bin/docker",
		WithExecCommand(recorder.ContextCommandFunc(t)))

	result, err := engine.Run(context.Background(), RunOptions{
		Image:   "alpine",
		Remove:  true,
		Volumes: []string{"vol-a:/input/vol-a:ro"},
		Command: []string{"true"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.ExitCode != 0 {
		t.Errorf("Run() exit code = %d, want 0", result.ExitCode)
	}
	if result.Error != nil {
		t.Errorf("Run() result error = %v, want nil", result.Error)
	}

	recorder.AssertInvocationCount(t, 1)
	recorder.AssertCommandName(t, "/usr/bin/docker")
	recorder.AssertFirstArg(t, "run")
	recorder.AssertArgsContain(t, "--volume=vol-a:/input/vol-a:ro")
}

func TestBaseCLIEngine_Run_NonZeroExit(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.ExitCode = 2
	engine := NewBaseCLIEngine("/usr/bin/docker",
		WithExecCommand(recorder.ContextCommandFunc(t)))

	result, err := engine.Run(context.Background(), RunOptions{Image: "alpine", Command: []string{"false"}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.ExitCode != 2 {
		t.Errorf("Run() exit code = %d, want 2", result.ExitCode)
	}
	if result.Error != nil {
		t.Errorf("Run() result error = %v, want nil for plain non-zero exit", result.Error)
	}
}

func TestBaseCLIEngine_Run_StreamsOutput(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.Stdout = "tar output"
	recorder.Stderr = "tar warning"
	engine := NewBaseCLIEngine("/usr/bin/docker",
		WithExecCommand(recorder.ContextCommandFunc(t)))

	var stdout, stderr bytes.Buffer
	_, err := engine.Run(context.Background(), RunOptions{
		Image:   "alpine",
		Command: []string{"tar"},
		Stdout:  &stdout,
		Stderr:  &stderr,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stdout.String() != "tar output" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "tar output")
	}
	if stderr.String() != "tar warning" {
		t.Errorf("stderr = %q, want %q", stderr.String(), "tar warning")
	}
}

func TestBaseCLIEngine_Run_LaunchFailure(t *testing.T) {
	t.Parallel()

	// Point the exec layer at a binary that cannot exist.
	engine := NewBaseCLIEngine("/nonexistent/engine",
		WithExecCommand(func(ctx context.Context, _ string, _ ...string) *exec.Cmd {
			return exec.CommandContext(ctx, "/nonexistent/engine")
		}))

	result, err := engine.Run(context.Background(), RunOptions{Image: "alpine"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Error == nil {
		t.Fatal("Run() result error = nil, want launch failure")
	}
	if !errors.Is(result.Error, ErrLaunchFailed) {
		t.Errorf("result error does not wrap ErrLaunchFailed: %v", result.Error)
	}
	var launchErr *LaunchError
	if !errors.As(result.Error, &launchErr) {
		t.Fatalf("result error is not a *LaunchError: %v", result.Error)
	}
	if launchErr.Binary != "/nonexistent/engine" {
		t.Errorf("LaunchError.Binary = %q, want %q", launchErr.Binary, "/nonexistent/engine")
	}
	if result.ExitCode != 1 {
		t.Errorf("Run() exit code = %d, want 1 on launch failure", result.ExitCode)
	}
}

func TestBaseCLIEngine_ListVolumes(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.Stdout = "vol-a\nvol-b\n\n"
	engine := NewBaseCLIEngine("/usr/bin/docker",
		WithExecCommand(recorder.ContextCommandFunc(t)))

	got, err := engine.ListVolumes(context.Background())
	if err != nil {
		t.Fatalf("ListVolumes() error = %v", err)
	}
	want := []string{"vol-a", "vol-b"}
	if !slices.Equal(got, want) {
		t.Errorf("ListVolumes() = %v, want %v", got, want)
	}

	recorder.AssertFirstArg(t, "volume")
	recorder.AssertArgsContain(t, "{{.Name}}")
}

func TestBaseCLIEngine_ListVolumes_Error(t *testing.T) {
	t.Parallel()

	recorder := NewMockCommandRecorder()
	recorder.ExitCode = 1
	engine := NewBaseCLIEngine("/usr/bin/docker",
		WithExecCommand(recorder.ContextCommandFunc(t)))

	_, err := engine.ListVolumes(context.Background())
	if err == nil {
		t.Fatal("ListVolumes() = nil error, want failure")
	}
	if !strings.Contains(err.Error(), "listing volumes") {
		t.Errorf("error %q does not mention listing volumes", err)
	}
}
