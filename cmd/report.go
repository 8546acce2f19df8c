package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	reportadapter "github.com/bnema/timeline-viewer/internal/adapters/report"
	timelinerender "github.com/bnema/timeline-viewer/internal/adapters/render/timeline"
	"github.com/bnema/timeline-viewer/internal/application"
	"github.com/bnema/timeline-viewer/internal/domain"
	"github.com/spf13/cobra"
)

type reportFlags struct {
	uses   []string
	replay string
	format string
	width  int
}

func newReportCmd(app *app) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Print the charge projection of a timeline",
		Long:  "Loads FILE, applies the requested uses in order and prints every row with the charges left at its time.",
		Example: `  tlv report m1s.txt
  tlv report m1s.txt --use 3 --use 7:-1.5 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, app, args[0], flags)
		},
	}

	cmd.Flags().StringArrayVar(&flags.uses, "use", nil, "spend a charge on ROW[:OFFSET] (1-based row, offset in seconds); repeatable")
	cmd.Flags().StringVar(&flags.replay, "replay", "", "restore the uses recorded in a TOML report before applying --use")
	cmd.Flags().StringVar(&flags.format, "format", string(reportadapter.FormatText), "output format: text, json or toml")
	cmd.Flags().IntVar(&flags.width, "width", 0, "text width (defaults to the terminal width)")

	return cmd
}

func runReport(cmd *cobra.Command, app *app, path string, flags reportFlags) error {
	format, err := reportadapter.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	session := app.startSession(cmd.ErrOrStderr())
	if _, err := session.Load(cmd.Context(), path); err != nil {
		return err
	}

	if flags.replay != "" {
		if err := replayUses(session, flags.replay); err != nil {
			return err
		}
	}

	offsets := make(map[int]string)
	for _, raw := range flags.uses {
		use, err := parseUseFlag(raw)
		if err != nil {
			return err
		}

		result, err := session.Use(use)
		if err != nil {
			return fmt.Errorf("apply --use %s: %w", raw, err)
		}
		if use.Offset != "" {
			offsets[use.Index] = use.Offset
		}
		if !result.Applied {
			printRejected(cmd.ErrOrStderr(), "--use "+raw, result)
		}
	}

	return writeReport(cmd, app, session, path, format, offsets, flags.width)
}

func writeReport(cmd *cobra.Command, app *app, session *application.Session, path string, format reportadapter.Format, offsets map[int]string, width int) error {
	rows := session.Rows()
	snapshot := session.Snapshot()

	switch format {
	case reportadapter.FormatJSON, reportadapter.FormatTOML:
		out := reportadapter.Report{
			Source:      path,
			GeneratedAt: app.clock.Now(),
			Pool:        snapshot.Pool,
			Rows:        rows,
			Uses:        snapshot.History,
		}
		if format == reportadapter.FormatJSON {
			return reportadapter.WriteJSON(cmd.OutOrStdout(), out)
		}
		return reportadapter.WriteTOML(cmd.OutOrStdout(), out)
	}

	if width <= 0 {
		width = terminalWidth(cmd.OutOrStdout())
	}

	rendered, err := app.renderer(rows, timelinerender.RenderOptions{
		Pool:    snapshot.Pool,
		Source:  path,
		History: snapshot.History,
		Width:   width,
		Offsets: offsets,
	})
	if err != nil {
		return fmt.Errorf("render timeline: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func replayUses(session *application.Session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open replay report: %w", err)
	}
	defer f.Close()

	saved, err := reportadapter.ReadTOML(f)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}

	session.Restore(saved.Uses)
	return nil
}

// parseUseFlag turns ROW[:OFFSET] into a use command; ROW is 1-based.
func parseUseFlag(raw string) (application.UseCommand, error) {
	rowText, offset, _ := strings.Cut(strings.TrimSpace(raw), ":")

	row, err := strconv.Atoi(strings.TrimSpace(rowText))
	if err != nil {
		return application.UseCommand{}, fmt.Errorf("invalid --use %q: row must be a whole number", raw)
	}

	return application.UseCommand{Index: row - 1, Offset: strings.TrimSpace(offset)}, nil
}

func printRejected(w io.Writer, source string, result application.UseResult) {
	_, _ = fmt.Fprintf(w, "%s rejected: %v: %s at %.1fs\n", source, domain.ErrInsufficientCharges, result.Label, result.Time)
}
