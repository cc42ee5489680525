// Package export renders attendance data as CSV and XLSX files.
//
// Exports are read-only projections: they never touch the store.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/roach88/rollcall/internal/model"
)

// Placeholders for values a row does not have.
const (
	NotRecorded  = "Not recorded"
	NotAvailable = "N/A"
)

// RecordsFilename is the default file name of a records export.
const RecordsFilename = "teacher-attendance.csv"

// DailyHeader is the column header of the daily report.
var DailyHeader = []string{"Teacher Name", "Employee ID", "Department", "Check In", "Check Out", "Status", "Total Hours"}

// RecordsHeader is the column header of the records export.
var RecordsHeader = []string{"Date", "Teacher Name", "Check In", "Check Out", "Status", "Total Hours"}

// DailyFilename returns the default file name of the daily report for date,
// e.g. "daily-attendance-2024-01-10.csv". ext is given without the dot.
func DailyFilename(date, ext string) string {
	return fmt.Sprintf("daily-attendance-%s.%s", date, ext)
}

// DailyRows returns the daily report rows, without the header, one per entry.
func DailyRows(view model.DailyView) [][]string {
	rows := make([][]string, 0, len(view.Entries))
	for _, e := range view.Entries {
		row := []string{e.Teacher.Name, e.Teacher.EmployeeID, e.Teacher.Department, NotRecorded, NotRecorded, "Absent", "0"}
		if r := e.Record; r != nil {
			row[3] = orDefault(r.CheckIn, NotRecorded)
			row[4] = orDefault(r.CheckOut, NotRecorded)
			row[5] = orDefault(string(r.Status), "Absent")
			row[6] = formatHours(r.TotalHours, "0")
		}
		rows = append(rows, row)
	}
	return rows
}

// RecordsRows returns the records export rows, without the header.
func RecordsRows(records []model.AttendanceRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Date,
			r.TeacherName,
			r.CheckIn,
			orDefault(r.CheckOut, NotAvailable),
			string(r.Status),
			formatHours(r.TotalHours, NotAvailable),
		})
	}
	return rows
}

// WriteDailyCSV writes the daily report of view to w.
func WriteDailyCSV(w io.Writer, view model.DailyView) error {
	return writeCSV(w, DailyHeader, DailyRows(view))
}

// WriteRecordsCSV writes records to w.
func WriteRecordsCSV(w io.Writer, records []model.AttendanceRecord) error {
	return writeCSV(w, RecordsHeader, RecordsRows(records))
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

func formatHours(h *float64, missing string) string {
	if h == nil {
		return missing
	}
	return fmt.Sprintf("%.2f", *h)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
