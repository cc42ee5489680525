package ledger

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/roach88/rollcall/internal/model"
)

// FilterRecords returns the records whose date, status or teacher name
// contains term, ignoring case. An empty term keeps every record.
func FilterRecords(records []model.AttendanceRecord, term string) []model.AttendanceRecord {
	term = strings.TrimSpace(term)
	if term == "" {
		return records
	}
	caser := cases.Fold()
	needle := caser.String(term)

	out := make([]model.AttendanceRecord, 0, len(records))
	for _, r := range records {
		for _, field := range []string{r.Date, string(r.Status), r.TeacherName} {
			if strings.Contains(caser.String(field), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
