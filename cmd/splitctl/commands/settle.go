package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/splitmonth/internal/calculator"
)

const dateLayout = "2006-01-02"

// settleInput is the JSON document read by settle.
type settleInput struct {
	Members []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"members"`
	Expenses []struct {
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Payer       string          `json:"payer"`
		Date        string          `json:"date"`
	} `json:"expenses"`
}

func settleCmd() *cobra.Command {
	var (
		month  string
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "settle <file|->",
		Short: "Compute balances and the transfers that settle them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != "" {
				if _, err := calculator.ParseMonth(month); err != nil {
					return err
				}
			}

			in, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			memberIDs := make([]string, len(in.Members))
			names := make(map[string]string, len(in.Members))
			for i, m := range in.Members {
				memberIDs[i] = m.ID
				names[m.ID] = m.Name
			}

			var expenses []calculator.ExpenseForBalance
			for i, e := range in.Expenses {
				if month != "" {
					date, err := time.Parse(dateLayout, e.Date)
					if err != nil {
						return fmt.Errorf("expense %d: invalid date %q", i+1, e.Date)
					}
					if calculator.MonthOf(date) != month {
						continue
					}
				}
				expenses = append(expenses, calculator.ExpenseForBalance{Amount: e.Amount, PayerID: e.Payer})
			}
			slog.Debug("Loaded settle input", "members", len(memberIDs), "expenses", len(expenses), "month", month)

			result := calculator.ComputeBalances(expenses, memberIDs)
			transfers := calculator.MinimizeSettlement(result.NetBalance)

			out := cmd.OutOrStdout()
			label := func(id string) string {
				if names[id] != "" {
					return names[id]
				}
				return id
			}

			fmt.Fprintf(out, "Total: %s\n", result.TotalExpense.StringFixed(2))
			fmt.Fprintf(out, "Share per person: %s\n", result.SharePerPerson.StringFixed(2))
			fmt.Fprintln(out, "Balances:")
			for _, id := range result.Members {
				fmt.Fprintf(out, "  %s: paid %s, balance %s\n",
					label(id),
					result.PaidByMember[id].StringFixed(2),
					result.NetBalance[id].StringFixed(2),
				)
			}

			fmt.Fprintln(out, "Transfers:")
			if len(transfers) == 0 {
				fmt.Fprintln(out, "  none")
			}
			fmt.Fprint(out, calculator.FormatTransfers(transfers, names))

			if verify {
				residual := calculator.CheckSettlement(result.NetBalance, transfers)
				unsettled := calculator.Unsettled(residual)
				if len(unsettled) == 0 {
					fmt.Fprintln(out, "Verified: every balance settles")
					return nil
				}
				fmt.Fprintln(out, "Unsettled after transfers:")
				for _, id := range unsettled {
					fmt.Fprintf(out, "  %s: %s\n", label(id), residual[id].StringFixed(2))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only use expenses dated in this YYYY-MM month")
	cmd.Flags().BoolVar(&verify, "verify", false, "apply the transfers and report any balance left over")
	return cmd
}

func readInput(cmd *cobra.Command, path string) (*settleInput, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var in settleInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	return &in, nil
}
