// Package ledger owns attendance records and derives status and statistics from them.
//
// A record is created by a check-in (status partial) and completed in place,
// exactly once, by the matching check-out (status present). Records are never
// deleted. Absence is not stored: a teacher with no record for a day is absent
// for that day.
//
// # Invariants
//
//   - At most one open record per (teacher, date)
//   - total_hours is set only together with check_out and is never negative
//   - teacher_name is the name at check-in time and does not follow renames
//
// The ledger loads its collection once when opened and rewrites it to the store
// after every mutation. Reads never go to the store.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/roach88/rollcall/internal/ident"
	"github.com/roach88/rollcall/internal/model"
	"github.com/roach88/rollcall/internal/store"
)

// Ledger manages attendance records, newest first.
//
// Thread-safety: all methods are safe for concurrent use.
type Ledger struct {
	mu      sync.RWMutex
	store   store.Store
	ids     ident.Generator
	loc     *time.Location
	logger  *slog.Logger
	records []model.AttendanceRecord
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithGenerator overrides the record id generator (defaults to UUIDv7).
func WithGenerator(g ident.Generator) Option {
	return func(l *Ledger) { l.ids = g }
}

// WithLocation sets the time zone that date and time-of-day strings are read
// and displayed in (defaults to time.Local).
func WithLocation(loc *time.Location) Option {
	return func(l *Ledger) { l.loc = loc }
}

// WithLogger sets the logger (defaults to slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// Open loads the attendance collection from st.
// Missing or unreadable stored data yields an empty ledger. Records written by
// older versions (display-only dates, no timestamps) are upgraded in memory.
func Open(ctx context.Context, st store.Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:  st,
		ids:    ident.UUIDv7Generator{},
		loc:    time.Local,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	records, err := store.LoadList[model.AttendanceRecord](ctx, st, store.KeyAttendance, l.logger)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	upgraded := 0
	for i, r := range records {
		if u, changed := upgradeRecord(r, l.loc); changed {
			records[i] = u
			upgraded++
		}
	}
	if upgraded > 0 {
		l.logger.Info("upgraded legacy attendance records", "count", upgraded)
	}

	l.records = records
	return l, nil
}

// Location returns the time zone the ledger reads and displays times in.
func (l *Ledger) Location() *time.Location {
	return l.loc
}

// CheckIn opens a record for teacher at the given time of day and date.
// Returns ErrAlreadyCheckedIn, and creates nothing, if the teacher already has
// an open record for that date.
func (l *Ledger) CheckIn(ctx context.Context, teacher model.Teacher, clock, date string) (model.AttendanceRecord, error) {
	return l.CheckInWithNotes(ctx, teacher, clock, date, "")
}

// CheckInWithNotes is CheckIn with free-text notes attached to the new record.
func (l *Ledger) CheckInWithNotes(ctx context.Context, teacher model.Teacher, clock, date, notes string) (model.AttendanceRecord, error) {
	at, err := ParseStamp(date, clock, l.loc)
	if err != nil {
		return model.AttendanceRecord{}, newError(ErrCodeInvalidTime, teacher.ID, date, err)
	}
	day := at.Format(DateLayout)

	l.mu.Lock()
	defer l.mu.Unlock()

	if idx := l.openIndex(teacher.ID, day); idx >= 0 {
		return l.records[idx], newError(ErrCodeAlreadyCheckedIn, teacher.ID, day, nil)
	}

	rec := model.AttendanceRecord{
		ID:          teacher.ID + "-" + l.ids.Generate(),
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
		Date:        day,
		CheckIn:     at.Format(TimeLayout),
		Status:      model.StatusPartial,
		Notes:       notes,
		CheckInAt:   at.UnixMilli(),
	}

	next := make([]model.AttendanceRecord, 0, len(l.records)+1)
	next = append(next, rec)
	next = append(next, l.records...)
	if err := l.flush(ctx, next); err != nil {
		return model.AttendanceRecord{}, err
	}

	l.logger.Info("checked in", "teacher", teacher.ID, "date", day, "time", rec.CheckIn)
	return rec, nil
}

// CheckOut completes the open record of teacherID for date.
// Returns ErrNotCheckedIn, and changes nothing, when there is no open record.
// Returns ErrCheckOutBeforeCheckIn when clock is earlier than the check-in.
func (l *Ledger) CheckOut(ctx context.Context, teacherID, clock, date string) (model.AttendanceRecord, error) {
	at, err := ParseStamp(date, clock, l.loc)
	if err != nil {
		return model.AttendanceRecord{}, newError(ErrCodeInvalidTime, teacherID, date, err)
	}
	day := at.Format(DateLayout)

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.openIndex(teacherID, day)
	if idx < 0 {
		l.logger.Debug("check-out without open record", "teacher", teacherID, "date", day)
		return model.AttendanceRecord{}, newError(ErrCodeNotCheckedIn, teacherID, day, nil)
	}

	rec := l.records[idx]
	outAt := at.UnixMilli()
	if rec.CheckInAt != 0 && outAt < rec.CheckInAt {
		return rec, newError(ErrCodeCheckOutBeforeCheckIn, teacherID, day, nil)
	}

	rec.CheckOut = at.Format(TimeLayout)
	rec.CheckOutAt = outAt
	rec.Status = model.StatusPresent
	rec.TotalHours = nil
	if rec.CheckInAt != 0 {
		hours := HoursBetween(rec.CheckInAt, outAt)
		rec.TotalHours = &hours
	} else {
		l.logger.Warn("check-in time unreadable, total hours left unset", "record", rec.ID)
	}

	next := slices.Clone(l.records)
	next[idx] = rec
	if err := l.flush(ctx, next); err != nil {
		return model.AttendanceRecord{}, err
	}

	l.logger.Info("checked out", "teacher", teacherID, "date", day, "time", rec.CheckOut)
	return rec, nil
}

// StatusFor reports whether teacherID has an open record for date.
func (l *Ledger) StatusFor(teacherID, date string) model.CheckInStatus {
	day := DayKey(date, l.loc)

	l.mu.RLock()
	defer l.mu.RUnlock()

	if idx := l.openIndex(teacherID, day); idx >= 0 {
		return model.CheckInStatus{IsCheckedIn: true, CheckInTime: l.records[idx].CheckIn}
	}
	return model.CheckInStatus{}
}

// Records returns every record, newest first.
func (l *Ledger) Records() []model.AttendanceRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.records)
}

// RecordsFor returns the records of teacherID, newest first.
func (l *Ledger) RecordsFor(teacherID string) []model.AttendanceRecord {
	return l.filter(func(r model.AttendanceRecord) bool { return r.TeacherID == teacherID })
}

// RecordsOn returns the records for date, newest first.
func (l *Ledger) RecordsOn(date string) []model.AttendanceRecord {
	day := DayKey(date, l.loc)
	return l.filter(func(r model.AttendanceRecord) bool { return r.Date == day })
}

func (l *Ledger) filter(keep func(model.AttendanceRecord) bool) []model.AttendanceRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.AttendanceRecord, 0)
	for _, r := range l.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// openIndex returns the index of the open record for (teacherID, day), or -1.
// Caller must hold l.mu.
func (l *Ledger) openIndex(teacherID, day string) int {
	return slices.IndexFunc(l.records, func(r model.AttendanceRecord) bool {
		return r.TeacherID == teacherID && r.Date == day && r.IsOpen()
	})
}

// flush persists next and makes it the in-memory collection.
// On failure the in-memory collection is left unchanged.
func (l *Ledger) flush(ctx context.Context, next []model.AttendanceRecord) error {
	if err := store.SaveList(ctx, l.store, store.KeyAttendance, next); err != nil {
		return fmt.Errorf("save attendance: %w", err)
	}
	l.records = next
	return nil
}

// upgradeRecord fills in what older versions did not store: canonical dates and
// times, epoch timestamps and, when both ends parse in order, total hours.
// Negative or non-finite stored hours are dropped.
func upgradeRecord(r model.AttendanceRecord, loc *time.Location) (model.AttendanceRecord, bool) {
	orig := r
	changed := false

	if key := DayKey(r.Date, loc); key != r.Date {
		if _, err := ParseDay(r.Date, loc); err == nil {
			r.Date = key
			changed = true
		}
	}
	if r.CheckInAt == 0 && r.CheckIn != "" {
		if at, err := ParseStamp(orig.Date, r.CheckIn, loc); err == nil {
			r.CheckInAt = at.UnixMilli()
			r.CheckIn = at.Format(TimeLayout)
			changed = true
		}
	}
	if r.CheckOutAt == 0 && r.CheckOut != "" {
		if at, err := ParseStamp(orig.Date, r.CheckOut, loc); err == nil {
			r.CheckOutAt = at.UnixMilli()
			r.CheckOut = at.Format(TimeLayout)
			changed = true
		}
	}
	if r.TotalHours != nil && !validHours(*r.TotalHours) {
		r.TotalHours = nil
		changed = true
	}
	if r.TotalHours == nil && r.CheckInAt != 0 && r.CheckOutAt >= r.CheckInAt && r.CheckOutAt != 0 {
		hours := HoursBetween(r.CheckInAt, r.CheckOutAt)
		r.TotalHours = &hours
		changed = true
	}
	if !r.Status.IsStored() {
		if r.IsOpen() {
			r.Status = model.StatusPartial
		} else {
			r.Status = model.StatusPresent
		}
		changed = true
	}
	return r, changed
}

func validHours(h float64) bool {
	return h >= 0 && !math.IsInf(h, 0) && !math.IsNaN(h)
}
