// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"voltar-cli/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `voltar config` command tree.
// Subcommands that read configuration use the App's config provider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage voltar configuration",
		Long: `Manage voltar configuration.

Configuration is stored in:
  - Linux: ~/.config/voltar/config.toml
  - macOS: ~/Library/Application Support/voltar/config.toml
  - Windows: %APPDATA%\voltar\config.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return initConfigFile(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return setConfigValue(cmd.Context(), app, args[0], args[1])
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.LoadConfig(ctx, cfgFile)
	if err != nil {
		return app.failCommand(err)
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	cfgPath, pathErr := config.ConfigFilePath()
	switch {
	case cfgFile != "":
		fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("Config file"), cfgFile)
	case pathErr == nil && fileExistsCheck(cfgPath):
		fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("Config file"), cfgPath)
	default:
		fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("engine"), SuccessStyle.Render(cfg.Engine.String()))
	fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("image"), SuccessStyle.Render(cfg.Image.OrDefault().String()))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", CmdStyle.Render("ui"))
	fmt.Fprintf(app.stdout, "  color_scheme: %s\n", SuccessStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(app.stdout, "  verbose: %s\n", SuccessStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))

	return nil
}

func initConfigFile(app *App) error {
	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", cfgPath)
	return nil
}

func setConfigValue(ctx context.Context, app *App, key, value string) error {
	cfg, err := app.LoadConfig(ctx, cfgFile)
	if err != nil {
		return app.failCommand(err)
	}

	switch key {
	case "engine":
		engine := config.ContainerEngine(value)
		if ok, errs := engine.IsValid(); !ok {
			return app.failCommand(errs[0])
		}
		cfg.Engine = engine

	case "image":
		image := config.ImageRef(value)
		if ok, errs := image.IsValid(); !ok {
			return app.failCommand(errs[0])
		}
		cfg.Image = image

	case "ui.color_scheme":
		scheme := config.ColorScheme(value)
		if ok, errs := scheme.IsValid(); !ok {
			return app.failCommand(errs[0])
		}
		cfg.UI.ColorScheme = scheme

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: engine, image, ui.color_scheme, ui.verbose", key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
