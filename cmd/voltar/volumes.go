// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// newVolumesCommand creates the `voltar volumes` command.
func newVolumesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "volumes",
		Short: "List the container engine's named volumes",
		Long: `List the names of all volumes known to the container engine,
one per line. The output is plain so it can be piped into a backup:

  voltar backup $(voltar volumes) ./all.tar.gz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return runVolumes(cmd.Context(), app)
		},
	}
}

func runVolumes(ctx context.Context, app *App) error {
	engine, err := app.EngineFor(ctx, currentServiceOptions())
	if err != nil {
		return app.failCommand(err)
	}

	if verbose {
		if version, verr := engine.Version(ctx); verr == nil {
			fmt.Fprintln(app.stderr, VerboseStyle.Render(fmt.Sprintf("engine: %s %s", engine.Name(), version)))
		}
	}

	names, err := engine.ListVolumes(ctx)
	if err != nil {
		return app.failCommand(err)
	}

	for _, name := range names {
		fmt.Fprintln(app.stdout, name)
	}
	return nil
}
