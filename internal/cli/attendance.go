package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/rollcall/internal/ledger"
	"github.com/roach88/rollcall/internal/model"
)

// AttendanceOptions holds the time flags of checkin and checkout.
type AttendanceOptions struct {
	*RootOptions
	Time  string
	Date  string
	Notes string
}

func bindTimeFlags(cmd *cobra.Command, opts *AttendanceOptions) {
	cmd.Flags().StringVar(&opts.Time, "time", "", "time of day, e.g. 08:30 or \"8:30 AM\" (default now)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "day, e.g. 2024-01-10 (default today)")
}

// NewCheckInCommand creates the checkin command.
func NewCheckInCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AttendanceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "checkin <teacher-id>",
		Short: "Record a teacher's arrival",
		Long: `Open an attendance record for the teacher. A teacher can have only one
open record per day; check out before checking in again.

Exit codes:
  0 - Checked in
  1 - Rejected (already checked in, unknown or inactive teacher)
  2 - Command error

Example:
  rollcall checkin 0191... --time 08:00 --date 2024-01-10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				t, err := a.activeTeacher(args[0])
				if err != nil {
					return err
				}
				rec, err := a.ledger.CheckInWithNotes(ctx, t, a.clock(opts.Time), a.today(opts.Date), opts.Notes)
				if err != nil {
					return failure("check-in rejected", err)
				}
				if a.out.IsJSON() {
					return a.out.Success(rec)
				}
				fmt.Fprintf(a.out.Writer, "%s checked in at %s on %s\n", rec.TeacherName, rec.CheckIn, rec.Date)
				return nil
			})
		},
	}

	bindTimeFlags(cmd, opts)
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "free-text notes")

	return cmd
}

// NewCheckOutCommand creates the checkout command.
func NewCheckOutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AttendanceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "checkout <teacher-id>",
		Short: "Record a teacher's departure",
		Long: `Complete the teacher's open record for the day and compute total hours.
Works for teachers removed from the directory as long as they have an open record.

Exit codes:
  0 - Checked out
  1 - Rejected (not checked in, time earlier than check-in)
  2 - Command error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				rec, err := a.ledger.CheckOut(ctx, args[0], a.clock(opts.Time), a.today(opts.Date))
				if err != nil {
					return failure("check-out rejected", err)
				}
				if a.out.IsJSON() {
					return a.out.Success(rec)
				}
				fmt.Fprintf(a.out.Writer, "%s checked out at %s on %s (%s hours)\n",
					rec.TeacherName, rec.CheckOut, rec.Date, hoursText(rec.TotalHours))
				return nil
			})
		},
	}

	bindTimeFlags(cmd, opts)

	return cmd
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "status <teacher-id>",
		Short: "Show whether a teacher is checked in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				status := a.ledger.StatusFor(args[0], a.today(date))
				if a.out.IsJSON() {
					return a.out.Success(status)
				}
				if status.IsCheckedIn {
					fmt.Fprintf(a.out.Writer, "Checked in since %s\n", status.CheckInTime)
				} else {
					fmt.Fprintln(a.out.Writer, "Not checked in")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day (default today)")

	return cmd
}

// RecordsOptions selects the records shown by records and export records.
type RecordsOptions struct {
	*RootOptions
	TeacherID string
	Date      string
	Search    string
}

func bindRecordsFlags(cmd *cobra.Command, opts *RecordsOptions) {
	cmd.Flags().StringVar(&opts.TeacherID, "teacher", "", "only records of this teacher id")
	cmd.Flags().StringVar(&opts.Date, "date", "", "only records of this day")
	cmd.Flags().StringVar(&opts.Search, "search", "", "filter by date, status or teacher name")
}

// selectRecords applies opts to the ledger, newest first.
func selectRecords(a *app, opts *RecordsOptions) []model.AttendanceRecord {
	var records []model.AttendanceRecord
	switch {
	case opts.TeacherID != "":
		records = a.ledger.RecordsFor(opts.TeacherID)
	case opts.Date != "":
		records = a.ledger.RecordsOn(opts.Date)
	default:
		records = a.ledger.Records()
	}
	if opts.TeacherID != "" && opts.Date != "" {
		day := ledger.DayKey(opts.Date, a.loc)
		filtered := make([]model.AttendanceRecord, 0, len(records))
		for _, r := range records {
			if r.Date == day {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}
	return ledger.FilterRecords(records, opts.Search)
}

// NewRecordsCommand creates the records command.
func NewRecordsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "records",
		Short: "List attendance records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				records := selectRecords(a, opts)
				if a.out.IsJSON() {
					return a.out.Success(records)
				}
				printRecords(a.out.Writer, records)
				return nil
			})
		},
	}

	bindRecordsFlags(cmd, opts)

	return cmd
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	var teacherID string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show attendance statistics",
		Long: `Show attendance statistics for everyone, or for one teacher with --teacher.

Total days counts every record, present days counts completed records and the
average is total hours over present days.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				stats := a.ledger.Stats()
				if teacherID != "" {
					stats = a.ledger.StatsFor(teacherID)
				}
				if a.out.IsJSON() {
					return a.out.Success(stats)
				}
				printStats(a.out.Writer, stats)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&teacherID, "teacher", "", "only this teacher id")

	return cmd
}

// NewDailyCommand creates the daily command.
func NewDailyCommand(rootOpts *RootOptions) *cobra.Command {
	var date, search string

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show the attendance overview of a day",
		Long: `Show every active teacher with their attendance for the day.
Teachers without a record are listed as absent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				view := a.ledger.Daily(a.today(date), a.dir.List(), search)
				if a.out.IsJSON() {
					return a.out.Success(view)
				}
				printDaily(a.out.Writer, view)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day (default today)")
	cmd.Flags().StringVar(&search, "search", "", "filter by name, department, employee id or email")

	return cmd
}
