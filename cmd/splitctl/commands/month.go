package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitmonth/internal/calculator"
)

func monthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month [YYYY-MM-DD]",
		Short: "Print the month bucket of a date (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now().UTC()
			if len(args) == 1 {
				parsed, err := time.Parse(dateLayout, args[0])
				if err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", args[0])
				}
				date = parsed
			}
			fmt.Fprintln(cmd.OutOrStdout(), calculator.MonthOf(date))
			return nil
		},
	}
	return cmd
}
