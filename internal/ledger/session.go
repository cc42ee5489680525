package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/rollcall/internal/model"
	"github.com/roach88/rollcall/internal/store"
)

// SessionState is the persisted check-in scratch state of the single-teacher mode.
type SessionState struct {
	TeacherID   string `json:"teacher_id,omitempty"`
	IsCheckedIn bool   `json:"is_checked_in"`
	CheckInTime string `json:"check_in_time,omitempty"`
	Date        string `json:"date,omitempty"`
}

// Session tracks one teacher's own check-ins, remembering across restarts
// whether they are currently checked in.
//
// The ledger stays the source of truth: on open, stored scratch state that
// disagrees with the ledger is discarded.
type Session struct {
	mu      sync.Mutex
	ledger  *Ledger
	store   store.Store
	teacher model.Teacher
	logger  *slog.Logger
	state   SessionState
}

// OpenSession restores the session of teacher from st.
func OpenSession(ctx context.Context, l *Ledger, st store.Store, teacher model.Teacher) (*Session, error) {
	s := &Session{
		ledger:  l,
		store:   st,
		teacher: teacher,
		logger:  l.logger,
		state:   SessionState{TeacherID: teacher.ID},
	}

	data, found, err := st.Load(ctx, store.KeySession)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	if !found {
		return s, nil
	}

	var saved SessionState
	if err := json.Unmarshal([]byte(data), &saved); err != nil {
		s.logger.Warn("discarding unreadable session state", "error", err)
		return s, nil
	}
	if saved.TeacherID != teacher.ID {
		s.logger.Debug("session belongs to another teacher, starting fresh", "stored", saved.TeacherID)
		return s, nil
	}

	status := l.StatusFor(teacher.ID, saved.Date)
	if saved.IsCheckedIn && !status.IsCheckedIn {
		s.logger.Info("stored session is stale, clearing", "date", saved.Date)
		return s, nil
	}
	if saved.IsCheckedIn {
		saved.CheckInTime = status.CheckInTime
	}
	s.state = saved
	return s, nil
}

// Teacher returns the teacher the session belongs to.
func (s *Session) Teacher() model.Teacher {
	return s.teacher
}

// State returns the current scratch state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CheckIn checks the session teacher in and remembers the open check-in.
func (s *Session) CheckIn(ctx context.Context, clock, date string) (model.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.ledger.CheckIn(ctx, s.teacher, clock, date)
	if err != nil {
		return rec, err
	}
	return rec, s.save(ctx, SessionState{
		TeacherID:   s.teacher.ID,
		IsCheckedIn: true,
		CheckInTime: rec.CheckIn,
		Date:        rec.Date,
	})
}

// CheckOut completes the open check-in. An empty date means the day of the
// remembered check-in.
func (s *Session) CheckOut(ctx context.Context, clock, date string) (model.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if date == "" {
		date = s.state.Date
	}
	rec, err := s.ledger.CheckOut(ctx, s.teacher.ID, clock, date)
	if err != nil {
		return rec, err
	}
	return rec, s.save(ctx, SessionState{TeacherID: s.teacher.ID})
}

// Records returns the session teacher's records, newest first.
func (s *Session) Records() []model.AttendanceRecord {
	return s.ledger.RecordsFor(s.teacher.ID)
}

// Stats aggregates the session teacher's records.
func (s *Session) Stats() model.Stats {
	return s.ledger.StatsFor(s.teacher.ID)
}

// save persists state and makes it current. Caller must hold s.mu.
func (s *Session) save(ctx context.Context, state SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.store.Save(ctx, store.KeySession, string(data)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.state = state
	return nil
}
