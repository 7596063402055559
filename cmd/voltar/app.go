// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"voltar-cli/internal/backup"
	"voltar-cli/internal/config"
	"voltar-cli/internal/container"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: all Cobra command handlers receive an App
	// reference and reach the backup machinery through its fields.
	App struct {
		Config        config.Provider
		ResolveEngine EngineResolver
		NewBackup     BackupServiceBuilder
		stdout        io.Writer
		stderr        io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp. Tests supply
	// fakes to isolate command behavior from real container engines.
	Dependencies struct {
		Config        config.Provider
		ResolveEngine EngineResolver
		NewBackup     BackupServiceBuilder
		Stdout        io.Writer
		Stderr        io.Writer
	}

	// BackupService runs volume backup and restore operations.
	// Restore reports the names of the volumes the archive targets.
	BackupService interface {
		Backup(ctx context.Context, volumes []string, targetPath string) error
		Restore(ctx context.Context, sourcePath string) ([]string, error)
	}

	// EngineResolver turns a configured engine preference into a usable
	// container engine.
	EngineResolver func(preference config.ContainerEngine) (container.Engine, error)

	// BackupServiceBuilder constructs the backup service bound to an engine.
	BackupServiceBuilder func(engine container.Engine, image string, stdout, stderr io.Writer) BackupService

	// ServiceOptions carries the per-invocation flag overrides that shape
	// service construction. Zero values mean "use the configured value".
	ServiceOptions struct {
		// ConfigPath is the explicit --config flag value.
		ConfigPath string
		// Engine is the --engine flag value (podman, docker, or auto).
		Engine string
		// Image is the --image flag value overriding the helper image.
		Image string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.ResolveEngine == nil {
		deps.ResolveEngine = resolveEngine
	}
	if deps.NewBackup == nil {
		deps.NewBackup = newBackupService
	}

	return &App{
		Config:        deps.Config,
		ResolveEngine: deps.ResolveEngine,
		NewBackup:     deps.NewBackup,
		stdout:        deps.Stdout,
		stderr:        deps.Stderr,
	}
}

// resolveEngine is the production EngineResolver.
func resolveEngine(preference config.ContainerEngine) (container.Engine, error) {
	switch preference {
	case config.ContainerEnginePodman:
		return container.NewEngine(container.EngineTypePodman)
	case config.ContainerEngineDocker:
		return container.NewEngine(container.EngineTypeDocker)
	default:
		return container.AutoDetectEngine()
	}
}

// newBackupService is the production BackupServiceBuilder.
func newBackupService(engine container.Engine, image string, stdout, stderr io.Writer) BackupService {
	return backup.NewService(engine,
		backup.WithImage(image),
		backup.WithOutput(stdout, stderr),
	)
}

// LoadConfig loads configuration honoring an explicit --config path. When no
// explicit path is given and loading fails, it degrades to defaults with a
// warning so the CLI stays usable on fresh installs; an explicit path that
// fails to load is a hard error since the user asked for that exact file.
func (a *App) LoadConfig(ctx context.Context, configPath string) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: configPath})
	if err == nil {
		return cfg, nil
	}

	if configPath != "" {
		return nil, err
	}

	fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+"failed to load config, using defaults: "+err.Error())
	return config.DefaultConfig(), nil
}

// resolveInvocation loads config and resolves the engine for one command
// invocation, applying the --engine override on top of the configured
// preference.
func (a *App) resolveInvocation(ctx context.Context, opts ServiceOptions) (*config.Config, container.Engine, error) {
	cfg, err := a.LoadConfig(ctx, opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	preference := cfg.Engine
	if opts.Engine != "" {
		preference = config.ContainerEngine(opts.Engine)
		if ok, errs := preference.IsValid(); !ok {
			return nil, nil, errs[0]
		}
	}

	engine, err := a.ResolveEngine(preference)
	if err != nil {
		return nil, nil, err
	}

	return cfg, engine, nil
}

// EngineFor resolves the container engine for an invocation.
func (a *App) EngineFor(ctx context.Context, opts ServiceOptions) (container.Engine, error) {
	_, engine, err := a.resolveInvocation(ctx, opts)
	return engine, err
}

// BackupServiceFor builds the backup service for an invocation: load config,
// apply flag overrides, resolve the engine, and bind the service to the
// App's output streams.
func (a *App) BackupServiceFor(ctx context.Context, opts ServiceOptions) (BackupService, error) {
	cfg, engine, err := a.resolveInvocation(ctx, opts)
	if err != nil {
		return nil, err
	}

	image := cfg.Image
	if opts.Image != "" {
		image = config.ImageRef(opts.Image)
		if ok, errs := image.IsValid(); !ok {
			return nil, errs[0]
		}
	}

	return a.NewBackup(engine, image.OrDefault().String(), a.stdout, a.stderr), nil
}
