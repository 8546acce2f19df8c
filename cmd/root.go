package cmd

import (
	applog "github.com/bnema/timeline-viewer/internal/log"
	"github.com/spf13/cobra"
)

var closeLogs = applog.Close

func Execute() error {
	return execute(newRootCmd())
}

// execute runs the command tree and always releases the log file, including on error paths
// where cobra skips post-run hooks.
func execute(rootCmd *cobra.Command) error {
	err := rootCmd.Execute()
	_ = closeLogs()
	return err
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tlv",
		Short:         "Timeline viewer (tlv): plan charge usage along a fight timeline",
		Long:          "tlv reads a timeline text file, shows every entry with the charges left at that moment, and simulates spending charges with per-use time offsets.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newViewCmd(app),
		newReportCmd(app),
		newFormatCmd(),
	)

	return rootCmd
}
