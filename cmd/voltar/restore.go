// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// newRestoreCommand creates the `voltar restore` command.
func newRestoreCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <archive>",
		Short: "Restore volumes from a tar.gz archive",
		Long: `Restore every volume contained in a backup archive.

The archive is read first to determine which volumes it holds; the
restore then unpacks it through an ephemeral helper container that
mounts each of those volumes writable. Volumes that do not exist yet
are created by the engine on first mount. Existing volume contents are
not cleared: archive entries overwrite files of the same name and leave
everything else in place.

Examples:
  voltar restore ./pg.tar.gz
  voltar restore --engine podman /backups/state.tar.gz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return runRestore(cmd.Context(), app, args[0])
		},
	}
}

func runRestore(ctx context.Context, app *App, source string) error {
	svc, err := app.BackupServiceFor(ctx, currentServiceOptions())
	if err != nil {
		return app.failCommand(err)
	}

	volumes, err := svc.Restore(ctx, source)
	if err != nil {
		return app.failCommand(err)
	}

	fmt.Fprintf(app.stdout, "%s Restored %d volume(s) from %s\n", SuccessStyle.Render("✓"), len(volumes), source)
	for _, volume := range volumes {
		fmt.Fprintf(app.stdout, "  - %s\n", volume)
	}
	return nil
}
