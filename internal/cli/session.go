package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/rollcall/internal/ledger"
)

// SessionOptions holds flags for the session commands.
type SessionOptions struct {
	*RootOptions
	TeacherID string
	Time      string
	Date      string
}

// NewSessionCommand creates the session command group: a single teacher's
// own check-in and check-out, remembered between runs.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Check yourself in and out",
		Long: `Personal mode for a single teacher. The teacher comes from --teacher or the
session_teacher config key. The session remembers an open check-in, so
"session checkout" needs no date.`,
	}

	cmd.PersistentFlags().StringVar(&opts.TeacherID, "teacher", "", "teacher id (default session_teacher from config)")

	checkin := &cobra.Command{
		Use:   "checkin",
		Short: "Check in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, a *app, s *ledger.Session) error {
				rec, err := s.CheckIn(ctx, a.clock(opts.Time), a.today(opts.Date))
				if err != nil {
					return failure("check-in rejected", err)
				}
				if a.out.IsJSON() {
					return a.out.Success(rec)
				}
				fmt.Fprintf(a.out.Writer, "Checked in at %s on %s\n", rec.CheckIn, rec.Date)
				return nil
			})
		},
	}
	checkin.Flags().StringVar(&opts.Time, "time", "", "time of day (default now)")
	checkin.Flags().StringVar(&opts.Date, "date", "", "day (default today)")

	checkout := &cobra.Command{
		Use:   "checkout",
		Short: "Check out of the open check-in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, a *app, s *ledger.Session) error {
				date := opts.Date
				if date == "" && !s.State().IsCheckedIn {
					date = a.today("")
				}
				rec, err := s.CheckOut(ctx, a.clock(opts.Time), date)
				if err != nil {
					return failure("check-out rejected", err)
				}
				if a.out.IsJSON() {
					return a.out.Success(rec)
				}
				fmt.Fprintf(a.out.Writer, "Checked out at %s (%s hours)\n", rec.CheckOut, hoursText(rec.TotalHours))
				return nil
			})
		},
	}
	checkout.Flags().StringVar(&opts.Time, "time", "", "time of day (default now)")
	checkout.Flags().StringVar(&opts.Date, "date", "", "day (default the day of the open check-in)")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show your check-in state and statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, a *app, s *ledger.Session) error {
				state, stats := s.State(), s.Stats()
				if a.out.IsJSON() {
					return a.out.Success(map[string]any{
						"teacher": s.Teacher(),
						"state":   state,
						"stats":   stats,
						"records": s.Records(),
					})
				}
				fmt.Fprintf(a.out.Writer, "%s\n", s.Teacher().Name)
				if state.IsCheckedIn {
					fmt.Fprintf(a.out.Writer, "Checked in since %s on %s\n\n", state.CheckInTime, state.Date)
				} else {
					fmt.Fprintf(a.out.Writer, "Not checked in\n\n")
				}
				printStats(a.out.Writer, stats)
				fmt.Fprintln(a.out.Writer)
				printRecords(a.out.Writer, s.Records())
				return nil
			})
		},
	}

	cmd.AddCommand(checkin, checkout, status)

	return cmd
}

func withSession(cmd *cobra.Command, opts *SessionOptions, fn func(ctx context.Context, a *app, s *ledger.Session) error) error {
	return withApp(cmd, opts.RootOptions, func(ctx context.Context, a *app) error {
		id := opts.TeacherID
		if id == "" {
			id = a.cfg.SessionTeacher
		}
		if id == "" {
			return &ExitError{Code: ExitCommandError, Reason: ErrCodeInvalidInput, Message: "no session teacher: pass --teacher or set session_teacher in the config file"}
		}
		t, err := a.activeTeacher(id)
		if err != nil {
			return err
		}
		s, err := ledger.OpenSession(ctx, a.ledger, a.store, t)
		if err != nil {
			return failure("failed to open session", err)
		}
		return fn(ctx, a, s)
	})
}
