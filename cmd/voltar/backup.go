// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// newBackupCommand creates the `voltar backup` command.
func newBackupCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <volume>... <archive>",
		Short: "Back up named volumes into a tar.gz archive",
		Long: `Back up one or more named volumes into a single gzip-compressed
tar archive.

The archive is written through an ephemeral helper container that mounts
each volume read-only, so volume contents are archived exactly as the
engine sees them. The last argument is the archive path on the host; it
is created if missing and its parent directory must exist.

Examples:
  voltar backup pg-data ./pg.tar.gz
  voltar backup pg-data redis-data /backups/state.tar.gz
  voltar backup --engine docker pg-data ./pg.tar.gz`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return runBackup(cmd.Context(), app, args[:len(args)-1], args[len(args)-1])
		},
	}
}

func runBackup(ctx context.Context, app *App, volumes []string, target string) error {
	svc, err := app.BackupServiceFor(ctx, currentServiceOptions())
	if err != nil {
		return app.failCommand(err)
	}

	if err := svc.Backup(ctx, volumes, target); err != nil {
		return app.failCommand(err)
	}

	fmt.Fprintf(app.stdout, "%s Backed up %d volume(s) to %s\n", SuccessStyle.Render("✓"), len(volumes), target)
	return nil
}
