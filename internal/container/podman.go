// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// PodmanEngine implements the Engine interface using the Podman CLI.
// It embeds BaseCLIEngine for common CLI operations.
type PodmanEngine struct {
	*BaseCLIEngine
}

// NewPodmanEngine creates a new Podman engine.
// On Linux with SELinux enforcing, host-path mounts are labeled with :z.
func NewPodmanEngine(opts ...BaseCLIEngineOption) *PodmanEngine {
	path, _ := exec.LookPath("podman")

	// SELinux labels on host-path mounts (prepend so callers can override)
	allOpts := append([]BaseCLIEngineOption{
		WithName(string(EngineTypePodman)),
		WithVolumeFormatter(addSELinuxLabel),
	}, opts...)

	return &PodmanEngine{
		BaseCLIEngine: NewBaseCLIEngine(path, allOpts...),
	}
}

// Available checks if Podman is available.
func (e *PodmanEngine) Available() bool {
	if e.BinaryPath() == "" {
		return false
	}
	cmd := e.CreateCommand(context.Background(), "version", "--format", "{{.Version}}")
	return cmd.Run() == nil
}

// Version returns the Podman version.
func (e *PodmanEngine) Version(ctx context.Context) (string, error) {
	out, err := e.RunCommandWithOutput(ctx, "version", "--format", "{{.Version}}")
	if err != nil {
		return "", fmt.Errorf("failed to get podman version: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// isSELinuxEnabled checks if SELinux is enforcing on the system.
func isSELinuxEnabled() bool {
	data, err := os.ReadFile("/sys/fs/selinux/enforce")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "1"
}

// addSELinuxLabel adds the :z label to a host-path mount when SELinux is
// enforcing. Does nothing on systems without SELinux.
func addSELinuxLabel(volume string) string {
	if !isSELinuxEnabled() {
		return volume
	}
	return labelHostPathMount(volume)
}

// labelHostPathMount appends a z option to a host-path bind mount that has
// no SELinux label yet. Named-volume mounts pass through untouched, so their
// argument form stays exactly as planned.
func labelHostPathMount(volume string) string {
	// Only bind mounts of host paths need relabeling; named volume sources
	// do not start with a path separator.
	if !strings.HasPrefix(volume, "/") {
		return volume
	}

	// Mount format: source:target[:options] with options comma-separated.
	parts := strings.Split(volume, ":")
	if len(parts) < 2 {
		return volume
	}

	if len(parts) >= 3 {
		options := parts[len(parts)-1]
		for opt := range strings.SplitSeq(options, ",") {
			if opt == "z" || opt == "Z" {
				// Already labeled
				return volume
			}
		}
		return volume + ",z"
	}

	return volume + ":z"
}
