package cmd

import (
	"fmt"

	reportadapter "github.com/bnema/timeline-viewer/internal/adapters/report"
	"github.com/bnema/timeline-viewer/internal/adapters/tui"
	"github.com/bnema/timeline-viewer/internal/adapters/watch"
	"github.com/spf13/cobra"
)

func newViewCmd(app *app) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Browse a timeline and plan charge uses interactively",
		Long:  "Opens FILE in a full-screen viewer. When stdout is not a terminal the text report is printed instead.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !isTerminal(cmd.OutOrStdout()) {
				return runReport(cmd, app, path, reportFlags{format: string(reportadapter.FormatText)})
			}

			session := app.startSession(nil)
			opts := tui.Options{Source: path, StatusTTL: app.cfg.View.StatusTTL}
			if _, err := session.Load(cmd.Context(), path); err != nil {
				opts.Notice = err.Error()
			}

			if follow {
				watcher, err := watch.NewFileWatcher(path)
				if err != nil {
					return fmt.Errorf("watch timeline: %w", err)
				}
				defer watcher.Close()
				opts.Watcher = watcher
			}

			return tui.Run(cmd.Context(), session, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&follow, "watch", "w", false, "reload the timeline whenever the file changes")

	return cmd
}
