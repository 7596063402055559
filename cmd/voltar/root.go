// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"voltar-cli/internal/config"
	"voltar-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// engineFlag overrides the configured container engine
	engineFlag string
	// imageFlag overrides the configured helper image
	imageFlag string

	// renderStyle is the glamour style used for issue catalog rendering.
	renderStyle = "dark"
)

// newRootCommand creates the voltar root command with all subcommands attached.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "voltar",
		Short: "Back up and restore container volumes",
		Long: TitleStyle.Render("voltar") + SubtitleStyle.Render(" - Back up and restore container volumes") + `

voltar archives named Docker/Podman volumes into a single
gzip-compressed tarball and restores them from it. All work happens
inside an ephemeral helper container, so nothing besides a container
engine needs to be installed on the host.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Back up volumes:  voltar backup db-data app-data ./backup.tar.gz
  2. Move the archive wherever you need it
  3. Restore volumes:  voltar restore ./backup.tar.gz

` + SubtitleStyle.Render("Examples:") + `
  voltar backup pg-data ./pg.tar.gz     Back up one volume
  voltar restore ./pg.tar.gz            Restore every volume in the archive
  voltar inspect ./pg.tar.gz            Show what an archive contains
  voltar volumes                        List the engine's named volumes
  voltar config show                    Show current configuration`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			applyAmbientConfig(cmd.Context(), app)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/voltar/config.toml)")
	rootCmd.PersistentFlags().StringVar(&engineFlag, "engine", "", "container engine to use (podman, docker, or auto)")
	rootCmd.PersistentFlags().StringVar(&imageFlag, "image", "", "helper image for backup containers (default alpine)")

	rootCmd.AddCommand(newBackupCommand(app))
	rootCmd.AddCommand(newRestoreCommand(app))
	rootCmd.AddCommand(newInspectCommand(app))
	rootCmd.AddCommand(newVolumesCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newCompletionCommand())

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	app := NewApp(Dependencies{})

	// Use fang.Execute for enhanced Cobra styling.
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version.
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// applyAmbientConfig folds config file settings into the ambient CLI state:
// verbosity, logging, and the issue render style. Load failures are ignored
// here; the command that needs configuration surfaces them itself.
func applyAmbientConfig(ctx context.Context, app *App) {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		cfg = config.DefaultConfig()
	}

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}

	if cfg.UI.ColorScheme == config.ColorSchemeLight {
		renderStyle = "light"
	} else {
		renderStyle = "dark"
	}

	setupLogging(verbose)
}

// setupLogging routes slog through a charm logger on stderr. Debug level is
// enabled only in verbose mode, which is where the backup service's planning
// logs become visible.
func setupLogging(verboseMode bool) {
	opts := log.Options{ReportTimestamp: false}
	if verboseMode {
		opts.Level = log.DebugLevel
	}
	slog.SetDefault(slog.New(log.NewWithOptions(os.Stderr, opts)))
}

// issueRenderStyle returns the glamour style for issue catalog rendering.
func issueRenderStyle() string {
	return renderStyle
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// currentServiceOptions snapshots the persistent flag values for one command
// invocation.
func currentServiceOptions() ServiceOptions {
	return ServiceOptions{
		ConfigPath: cfgFile,
		Engine:     engineFlag,
		Image:      imageFlag,
	}
}
