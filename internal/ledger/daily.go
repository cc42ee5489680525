package ledger

import (
	"github.com/roach88/rollcall/internal/directory"
	"github.com/roach88/rollcall/internal/model"
)

// Daily builds the attendance overview of date for the active teachers among
// teachers that match search.
//
// Each teacher is joined with their record for the day, preferring the open
// one. Teachers without a record are reported absent; nothing is written.
func (l *Ledger) Daily(date string, teachers []model.Teacher, search string) model.DailyView {
	day := DayKey(date, l.loc)

	l.mu.RLock()
	byTeacher := make(map[string]model.AttendanceRecord)
	for _, r := range l.records {
		if r.Date != day {
			continue
		}
		prev, seen := byTeacher[r.TeacherID]
		if !seen || (!prev.IsOpen() && r.IsOpen()) {
			byTeacher[r.TeacherID] = r
		}
	}
	l.mu.RUnlock()

	view := model.DailyView{Date: day, Entries: make([]model.DailyEntry, 0, len(teachers))}
	for _, t := range teachers {
		if !t.IsActive || !directory.Matches(t, search) {
			continue
		}

		entry := model.DailyEntry{Teacher: t, Status: model.StatusAbsent}
		if r, ok := byTeacher[t.ID]; ok {
			rec := r
			entry.Record = &rec
			entry.Status = r.Status
		}

		switch entry.Status {
		case model.StatusPresent:
			view.Present++
		case model.StatusPartial:
			view.Partial++
		default:
			view.Absent++
		}
		view.Entries = append(view.Entries, entry)
	}
	return view
}
