package ledger

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/roach88/rollcall/internal/model"
)

// DefaultRecent is the number of records a summary lists as recent activity.
const DefaultRecent = 5

// Summary builds the dashboard overview of date.
//
// Counts and the attendance rate cover the active teachers among teachers, as
// in Daily. DayHours sums every record of the day and MonthHours every record
// of its calendar month. Recent holds up to recent records, latest day first;
// records of the same day keep their newest-first order.
func (l *Ledger) Summary(date string, teachers []model.Teacher, recent int) model.Summary {
	view := l.Daily(date, teachers, "")

	s := model.Summary{
		Date:           view.Date,
		ActiveTeachers: len(view.Entries),
		Present:        view.Present,
		CheckedIn:      view.Partial,
		Absent:         view.Absent,
		Recent:         []model.AttendanceRecord{},
	}
	if s.ActiveTeachers > 0 {
		s.AttendanceRate = float64(s.Present+s.CheckedIn) / float64(s.ActiveTeachers)
	}

	month := ""
	if day, err := time.Parse(DateLayout, view.Date); err == nil {
		month = day.Format("2006-01") + "-"
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, r := range l.records {
		if r.TotalHours == nil {
			continue
		}
		if r.Date == view.Date {
			s.DayHours += *r.TotalHours
		}
		if month != "" && strings.HasPrefix(r.Date, month) {
			s.MonthHours += *r.TotalHours
		}
	}

	if recent > 0 {
		sorted := slices.Clone(l.records)
		slices.SortStableFunc(sorted, func(a, b model.AttendanceRecord) int {
			return cmp.Compare(sortDay(b), sortDay(a))
		})
		s.Recent = append(s.Recent, sorted[:min(recent, len(sorted))]...)
	}
	return s
}

// sortDay returns the canonical day of r, or "" so that records with an
// unreadable date sort after all others.
func sortDay(r model.AttendanceRecord) string {
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return ""
	}
	return r.Date
}
