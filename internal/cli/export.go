package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/rollcall/internal/export"
)

// NewExportCommand creates the export command group.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write attendance reports to files",
		Long: `Write attendance reports as CSV or XLSX.

Without --output, files are written to the configured export_dir (or the
current directory) under their default names. Use --output - for stdout.`,
	}

	cmd.AddCommand(newExportDailyCommand(rootOpts))
	cmd.AddCommand(newExportRecordsCommand(rootOpts))

	return cmd
}

func newExportDailyCommand(rootOpts *RootOptions) *cobra.Command {
	var date, search, output string
	var xlsx bool

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Export the daily overview",
		Long: `Export the attendance overview of a day, one row per active teacher.

Example:
  rollcall export daily --date 2024-01-10            # daily-attendance-2024-01-10.csv
  rollcall export daily --date 2024-01-10 --xlsx     # daily-attendance-2024-01-10.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				view := a.ledger.Daily(a.today(date), a.dir.List(), search)

				ext, write := "csv", func(w io.Writer) error { return export.WriteDailyCSV(w, view) }
				if xlsx {
					ext, write = "xlsx", func(w io.Writer) error { return export.WriteDailyXLSX(w, view) }
				}
				return writeExport(cmd, a, output, export.DailyFilename(view.Date, ext), len(view.Entries), write)
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day (default today)")
	cmd.Flags().StringVar(&search, "search", "", "filter by name, department, employee id or email")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout")
	cmd.Flags().BoolVar(&xlsx, "xlsx", false, "write an Excel workbook instead of CSV")

	return cmd
}

func newExportRecordsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordsOptions{RootOptions: rootOpts}
	var output string

	cmd := &cobra.Command{
		Use:   "records",
		Short: "Export attendance records as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				records := selectRecords(a, opts)
				return writeExport(cmd, a, output, export.RecordsFilename, len(records), func(w io.Writer) error {
					return export.WriteRecordsCSV(w, records)
				})
			})
		},
	}

	bindRecordsFlags(cmd, opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout")

	return cmd
}

// writeExport writes an export to output, or to defaultName in the export
// directory when output is empty, and reports where it went.
func writeExport(cmd *cobra.Command, a *app, output, defaultName string, rows int, write func(io.Writer) error) error {
	if output == "-" {
		if err := write(cmd.OutOrStdout()); err != nil {
			return WrapExitError(ExitFailure, "export failed", err)
		}
		return nil
	}

	path := output
	if path == "" {
		path = filepath.Join(a.cfg.ExportDir, defaultName)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return WrapExitError(ExitCommandError, "failed to create export directory", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create export file", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return WrapExitError(ExitFailure, "export failed", err)
	}
	if err := f.Close(); err != nil {
		return WrapExitError(ExitFailure, "export failed", err)
	}

	a.logger.Debug("export written", "path", path, "rows", rows)
	if a.out.IsJSON() {
		return a.out.Success(map[string]any{"path": path, "rows": rows})
	}
	fmt.Fprintf(a.out.Writer, "Wrote %d row(s) to %s\n", rows, path)
	return nil
}
