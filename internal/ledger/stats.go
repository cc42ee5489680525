package ledger

import "github.com/roach88/rollcall/internal/model"

// Stats aggregates every record in the ledger.
func (l *Ledger) Stats() model.Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return ComputeStats(l.records)
}

// StatsFor aggregates the records of teacherID.
func (l *Ledger) StatsFor(teacherID string) model.Stats {
	return ComputeStats(l.RecordsFor(teacherID))
}

// ComputeStats aggregates records.
//
// TotalDays counts every record, open or complete. PresentDays counts complete
// records. TotalHours sums the hours of records that have them. AverageHours is
// TotalHours / PresentDays, or 0 when nothing is complete. AttendanceRate is
// PresentDays / TotalDays, or 0 when there are no records.
func ComputeStats(records []model.AttendanceRecord) model.Stats {
	var s model.Stats
	for _, r := range records {
		s.TotalDays++
		if r.Status == model.StatusPresent {
			s.PresentDays++
		}
		if r.TotalHours != nil {
			s.TotalHours += *r.TotalHours
		}
	}
	if s.PresentDays > 0 {
		s.AverageHours = s.TotalHours / float64(s.PresentDays)
	}
	if s.TotalDays > 0 {
		s.AttendanceRate = float64(s.PresentDays) / float64(s.TotalDays)
	}
	return s
}
