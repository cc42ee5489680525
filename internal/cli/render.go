package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/roach88/rollcall/internal/model"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printTeachers(w io.Writer, teachers []model.Teacher) {
	if len(teachers) == 0 {
		fmt.Fprintln(w, "No teachers found")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMPLOYEE ID\tDEPARTMENT\tEMAIL\tACTIVE")
	for _, t := range teachers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.EmployeeID, t.Department, t.Email, yesNo(t.IsActive))
	}
	_ = tw.Flush()
}

func printTeacher(w io.Writer, t model.Teacher) {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", t.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", t.Email)
	fmt.Fprintf(tw, "Department:\t%s\n", t.Department)
	fmt.Fprintf(tw, "Employee ID:\t%s\n", t.EmployeeID)
	if t.PhoneNumber != "" {
		fmt.Fprintf(tw, "Phone:\t%s\n", t.PhoneNumber)
	}
	fmt.Fprintf(tw, "Joined:\t%s\n", t.JoinDate)
	fmt.Fprintf(tw, "Active:\t%s\n", yesNo(t.IsActive))
	_ = tw.Flush()
}

func printRecords(w io.Writer, records []model.AttendanceRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No attendance records found")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tTEACHER\tCHECK IN\tCHECK OUT\tSTATUS\tHOURS")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Date, r.TeacherName, r.CheckIn, orDash(r.CheckOut), r.Status.Label(), hoursText(r.TotalHours))
	}
	_ = tw.Flush()
}

func printStats(w io.Writer, s model.Stats) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Total days:\t%d\n", s.TotalDays)
	fmt.Fprintf(tw, "Present days:\t%d\n", s.PresentDays)
	fmt.Fprintf(tw, "Total hours:\t%.2f\n", s.TotalHours)
	fmt.Fprintf(tw, "Average hours:\t%.2f\n", s.AverageHours)
	fmt.Fprintf(tw, "Attendance rate:\t%s\n", percent(s.AttendanceRate))
	_ = tw.Flush()
}

func printSummary(w io.Writer, s model.Summary) {
	fmt.Fprintf(w, "Dashboard for %s\n\n", s.Date)
	tw := newTable(w)
	fmt.Fprintf(tw, "Active teachers:\t%d\n", s.ActiveTeachers)
	fmt.Fprintf(tw, "Present:\t%d\n", s.Present)
	fmt.Fprintf(tw, "Checked in:\t%d\n", s.CheckedIn)
	fmt.Fprintf(tw, "Absent:\t%d\n", s.Absent)
	fmt.Fprintf(tw, "Attendance rate:\t%s\n", percent(s.AttendanceRate))
	fmt.Fprintf(tw, "Hours today:\t%.1f\n", s.DayHours)
	fmt.Fprintf(tw, "Hours this month:\t%.1f\n", s.MonthHours)
	_ = tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent activity")
	printRecords(w, s.Recent)
}

func printDaily(w io.Writer, view model.DailyView) {
	fmt.Fprintf(w, "Attendance for %s\n", view.Date)
	fmt.Fprintf(w, "Present: %d  Checked in: %d  Absent: %d\n\n", view.Present, view.Partial, view.Absent)
	if len(view.Entries) == 0 {
		fmt.Fprintln(w, "No teachers found")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "TEACHER\tEMPLOYEE ID\tDEPARTMENT\tCHECK IN\tCHECK OUT\tSTATUS\tHOURS")
	for _, e := range view.Entries {
		in, out, hours := "-", "-", "-"
		if r := e.Record; r != nil {
			in, out, hours = r.CheckIn, orDash(r.CheckOut), hoursText(r.TotalHours)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Teacher.Name, e.Teacher.EmployeeID, e.Teacher.Department, in, out, e.Status.Label(), hours)
	}
	_ = tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func hoursText(h *float64) string {
	if h == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *h)
}

func percent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}
