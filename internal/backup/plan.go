// SPDX-License-Identifier: MPL-2.0

package backup

import (
	"voltar-cli/internal/container"
	"voltar-cli/pkg/fspath"
)

// Mount roots inside the helper container. Backups read volumes under
// /input and write the archive under /output; restores flip the direction.
const (
	inputRoot  = "/input"
	outputRoot = "/output"

	readOnlyMode  = "ro"
	readWriteMode = "rw"
)

type (
	// MountSpec is a single volume or bind mount of a planned invocation.
	// Mode is empty for the runtime's default (read-write).
	MountSpec struct {
		Source string
		Target string
		Mode   string
	}

	// Invocation is one planned container run: the mounts in final order,
	// the image, and the in-container command. It is assembled once,
	// executed once, and discarded.
	Invocation struct {
		Mounts  []MountSpec
		Image   string
		Command []string
	}
)

// Render produces the runtime's source:target[:mode] mount argument.
func (m MountSpec) Render() string {
	if m.Mode == "" {
		return m.Source + ":" + m.Target
	}
	return m.Source + ":" + m.Target + ":" + m.Mode
}

// RunOptions converts the invocation into engine run options. Mounts keep
// their planned order, and the helper container always removes itself.
func (inv Invocation) RunOptions() container.RunOptions {
	volumes := make([]string, 0, len(inv.Mounts))
	for _, m := range inv.Mounts {
		volumes = append(volumes, m.Render())
	}
	return container.RunOptions{
		Image:   inv.Image,
		Command: inv.Command,
		Volumes: volumes,
		Remove:  true,
	}
}

// PlanBackup builds the invocation that archives the named volumes into
// target. The archive's directory is mounted at /output and every volume is
// mounted read-only under /input by its own name, in caller order:
//
//	run --rm --volume=<dir>:/output [--volume=<v>:/input/<v>:ro]... <image> \
//	    tar -czf /output/<file> -C /input .
func PlanBackup(volumes []string, target fspath.ResolvedPath, image string) Invocation {
	mounts := make([]MountSpec, 0, len(volumes)+1)
	mounts = append(mounts, MountSpec{Source: target.Dir, Target: outputRoot})
	for _, v := range volumes {
		mounts = append(mounts, MountSpec{Source: v, Target: inputRoot + "/" + v, Mode: readOnlyMode})
	}

	return Invocation{
		Mounts:  mounts,
		Image:   image,
		Command: []string{"tar", "-czf", outputRoot + "/" + target.File, "-C", inputRoot, "."},
	}
}

// PlanRestore builds the invocation that unpacks source back into the named
// volumes. The archive's directory is mounted at /input and every volume is
// mounted read-write under /output by its own name, in caller order:
//
//	run --rm --volume=<dir>:/input [--volume=<v>:/output/<v>:rw]... <image> \
//	    tar -xzf /input/<file> -C /output
func PlanRestore(volumes []string, source fspath.ResolvedPath, image string) Invocation {
	mounts := make([]MountSpec, 0, len(volumes)+1)
	mounts = append(mounts, MountSpec{Source: source.Dir, Target: inputRoot})
	for _, v := range volumes {
		mounts = append(mounts, MountSpec{Source: v, Target: outputRoot + "/" + v, Mode: readWriteMode})
	}

	return Invocation{
		Mounts:  mounts,
		Image:   image,
		Command: []string{"tar", "-xzf", inputRoot + "/" + source.File, "-C", outputRoot},
	}
}
