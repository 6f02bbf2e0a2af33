package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitmonth/pkg/logging"
)

var logLevel string

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree. Output goes to the command's
// configured writers so tests can capture it.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "splitctl",
		Short:        "Settle shared monthly expenses from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), logging.ParseLevel(logLevel), false))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(settleCmd(), monthCmd())
	return root
}
