package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rollcall/internal/model"
	"github.com/roach88/rollcall/internal/store"
)

func TestSession_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	me := teacher("t1", "Ana Lima")

	s, err := OpenSession(ctx, openTestLedger(t, mem), mem, me)
	require.NoError(t, err)
	assert.False(t, s.State().IsCheckedIn)

	_, err = s.CheckIn(ctx, "08:00", "2024-01-10")
	require.NoError(t, err)

	reopened, err := OpenSession(ctx, openTestLedger(t, mem), mem, me)
	require.NoError(t, err)
	assert.Equal(t, SessionState{
		TeacherID:   "t1",
		IsCheckedIn: true,
		CheckInTime: "08:00",
		Date:        "2024-01-10",
	}, reopened.State())

	rec, err := reopened.CheckOut(ctx, "16:00", "")
	require.NoError(t, err)
	require.NotNil(t, rec.TotalHours)
	assert.Equal(t, 8.0, *rec.TotalHours)
	assert.Equal(t, SessionState{TeacherID: "t1"}, reopened.State())

	assert.Len(t, reopened.Records(), 1)
	assert.Equal(t, model.Stats{TotalDays: 1, PresentDays: 1, TotalHours: 8, AverageHours: 8, AttendanceRate: 1}, reopened.Stats())
}

func TestSession_StaleStateCleared(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	mem.Put(store.KeySession, `{"teacher_id":"t1","is_checked_in":true,"check_in_time":"08:00","date":"2024-01-10"}`)

	s, err := OpenSession(ctx, openTestLedger(t, mem), mem, teacher("t1", "Ana Lima"))
	require.NoError(t, err)
	assert.Equal(t, SessionState{TeacherID: "t1"}, s.State())
}

func TestSession_OtherTeacherIgnored(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	l := openTestLedger(t, mem)

	other, err := OpenSession(ctx, l, mem, teacher("t2", "Ben Okafor"))
	require.NoError(t, err)
	_, err = other.CheckIn(ctx, "08:00", "2024-01-10")
	require.NoError(t, err)

	s, err := OpenSession(ctx, l, mem, teacher("t1", "Ana Lima"))
	require.NoError(t, err)
	assert.Equal(t, SessionState{TeacherID: "t1"}, s.State())
	assert.Equal(t, "Ana Lima", s.Teacher().Name)
}

func TestSession_UnreadableStateIgnored(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	mem.Put(store.KeySession, "{not json")

	s, err := OpenSession(ctx, openTestLedger(t, mem), mem, teacher("t1", "Ana Lima"))
	require.NoError(t, err)
	assert.False(t, s.State().IsCheckedIn)
}

func TestSession_CheckOutWithoutCheckIn(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	s, err := OpenSession(ctx, openTestLedger(t, mem), mem, teacher("t1", "Ana Lima"))
	require.NoError(t, err)

	_, err = s.CheckOut(ctx, "16:00", "2024-01-10")
	assert.ErrorIs(t, err, ErrNotCheckedIn)
	assert.Zero(t, mem.Saves(store.KeySession))
}
