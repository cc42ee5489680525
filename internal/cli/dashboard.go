package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/rollcall/internal/ledger"
)

// NewDashboardCommand creates the dashboard command.
func NewDashboardCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		date   string
		recent int
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the attendance summary of a day",
		Long: `Show how many active teachers are present, checked in and absent, the
attendance rate, hours worked that day and month, and the latest records.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if recent < 0 {
				return &ExitError{Code: ExitCommandError, Reason: ErrCodeInvalidInput, Message: "--recent must not be negative"}
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				s := a.ledger.Summary(a.today(date), a.dir.List(), recent)
				if a.out.IsJSON() {
					return a.out.Success(s)
				}
				printSummary(a.out.Writer, s)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day (default today)")
	cmd.Flags().IntVar(&recent, "recent", ledger.DefaultRecent, "number of recent records to list")

	return cmd
}
