// SPDX-License-Identifier: MPL-2.0

// Package backup plans and runs volume backup and restore operations. A plan
// is a single ephemeral container invocation that mounts the archive's host
// directory on one side and the named volumes on the other, then runs tar
// inside the container. The Service executes plans through a container
// engine, one blocking attempt per command.
package backup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"voltar-cli/internal/archive"
	"voltar-cli/internal/container"
	"voltar-cli/pkg/fspath"
)

// DefaultImage is the helper image used when no image is configured. It only
// needs a tar that understands -z.
const DefaultImage = "alpine"

type (
	// ServiceOption configures a Service.
	ServiceOption func(*Service)

	// Service runs backup and restore workflows against a container engine.
	Service struct {
		engine container.Engine
		image  string
		logger *slog.Logger
		stdout io.Writer
		stderr io.Writer
	}
)

// WithImage sets the helper image for planned invocations.
func WithImage(image string) ServiceOption {
	return func(s *Service) {
		if image != "" {
			s.image = image
		}
	}
}

// WithLogger sets the logger used for progress reporting.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOutput redirects the container's stdout and stderr streams.
func WithOutput(stdout, stderr io.Writer) ServiceOption {
	return func(s *Service) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// NewService creates a Service that runs invocations through engine.
func NewService(engine container.Engine, opts ...ServiceOption) *Service {
	s := &Service{
		engine: engine,
		image:  DefaultImage,
		logger: slog.Default(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backup archives the named volumes into a single gzip-compressed tar at
// targetPath. A missing target file is created as an empty placeholder before
// resolution; on failure the placeholder is left in place.
func (s *Service) Backup(ctx context.Context, volumes []string, targetPath string) error {
	target, err := fspath.Resolve(targetPath, true)
	if err != nil {
		return fmt.Errorf("resolving backup target: %w", err)
	}

	s.logger.Debug("planned backup",
		"engine", s.engine.Name(),
		"target", target.String(),
		"volumes", volumes)

	return s.execute(ctx, PlanBackup(volumes, target, s.image))
}

// Restore unpacks the archive at sourcePath back into its volumes and
// returns the volume names the archive targets. The archive is read first so
// that the volume names can be derived from its top-level entries; an
// unreadable archive aborts the restore before any path resolution or
// container launch.
func (s *Service) Restore(ctx context.Context, sourcePath string) ([]string, error) {
	entries, err := archive.ListEntries(sourcePath)
	if err != nil {
		return nil, err
	}
	volumes := archive.VolumeNames(entries)

	source, err := fspath.Resolve(sourcePath, false)
	if err != nil {
		return nil, fmt.Errorf("resolving restore source: %w", err)
	}

	s.logger.Debug("planned restore",
		"engine", s.engine.Name(),
		"source", source.String(),
		"volumes", volumes)

	if err := s.execute(ctx, PlanRestore(volumes, source, s.image)); err != nil {
		return nil, err
	}
	return volumes, nil
}

// execute runs a planned invocation to completion. The runtime's failure to
// start surfaces as a LaunchError and a non-zero container exit as a
// RuntimeExitError; there is exactly one attempt either way.
func (s *Service) execute(ctx context.Context, inv Invocation) error {
	opts := inv.RunOptions()
	opts.Stdout = s.stdout
	opts.Stderr = s.stderr

	result, err := s.engine.Run(ctx, opts)
	if err != nil {
		return err
	}
	if result.Error != nil {
		return result.Error
	}
	if result.ExitCode != 0 {
		return &container.RuntimeExitError{Engine: s.engine.Name(), ExitCode: result.ExitCode}
	}
	return nil
}
