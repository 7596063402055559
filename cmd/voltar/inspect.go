// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"voltar-cli/internal/archive"

	"github.com/spf13/cobra"
)

// newInspectCommand creates the `voltar inspect` command.
func newInspectCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <archive>",
		Short: "Show the volumes inside a backup archive",
		Long: `Show which volumes a backup archive contains without restoring it.

The archive is read on the host; no container engine is needed. With
--verbose every archive entry is listed as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return runInspect(cmd.Context(), app, args[0])
		},
	}
}

func runInspect(_ context.Context, app *App, path string) error {
	summary, err := archive.Inspect(path)
	if err != nil {
		return app.failCommand(err)
	}

	fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("Archive"), path)
	fmt.Fprintf(app.stdout, "%s: %d\n", CmdStyle.Render("Entries"), len(summary.Entries))
	fmt.Fprintln(app.stdout)

	if len(summary.Volumes) == 0 {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("(no volumes found)"))
		return nil
	}

	fmt.Fprintln(app.stdout, CmdStyle.Render("Volumes:"))
	for _, volume := range summary.Volumes {
		entries := "entries"
		if summary.Counts[volume] == 1 {
			entries = "entry"
		}
		fmt.Fprintf(app.stdout, "  %s %s\n", volume,
			SubtitleStyle.Render(fmt.Sprintf("(%d %s)", summary.Counts[volume], entries)))
	}

	if verbose {
		fmt.Fprintln(app.stdout)
		fmt.Fprintln(app.stdout, VerboseStyle.Render("Entries:"))
		for _, entry := range summary.Entries {
			fmt.Fprintf(app.stdout, "  %s\n", VerboseStyle.Render(entry))
		}
	}

	return nil
}
