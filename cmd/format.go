package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

const formatReference = `# Timeline file format

One entry per line: a time in seconds, whitespace, then the skill name.

    0.0 "--sync--"
    7.9 "--middle--"
    12.5 "Quadruple Crossing"
    20 raging claw

## Rules

- Times are non-negative decimals (` + "`7`, `7.`, `7.25`" + `). Entries are sorted by time.
- A quoted name is taken verbatim up to the closing quote; anything after it is ignored.
- An unquoted name runs to the end of the line, or stops before the first whitespace followed
  by a capital letter. It may not contain ` + "`#`" + `.
- Unquoted names starting with ` + "`label`" + ` or ` + "`--`" + ` are rejected; quote them instead.
- Blank lines, lines starting with ` + "`#`" + ` and lines starting with ` + "`hideall`" + ` are ignored.
- Any other line that does not match is skipped silently.
- The file must be UTF-8; a leading byte order mark is allowed.
`

func newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format",
		Short: "Describe the timeline file format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !isTerminal(out) {
				_, err := fmt.Fprint(out, formatReference)
				return err
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(terminalWidth(out)),
			)
			if err != nil {
				return fmt.Errorf("create markdown renderer: %w", err)
			}

			rendered, err := renderer.Render(formatReference)
			if err != nil {
				return fmt.Errorf("render format reference: %w", err)
			}

			_, err = fmt.Fprint(out, rendered)
			return err
		},
	}
}
