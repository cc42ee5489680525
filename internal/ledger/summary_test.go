package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rollcall/internal/model"
	"github.com/roach88/rollcall/internal/store"
)

func TestSummary(t *testing.T) {
	ctx := context.Background()
	l := openTestLedger(t, store.NewMemory())

	ana := teacher("t1", "Ana Lima")
	ben := teacher("t2", "Ben Okafor")
	cho := teacher("t3", "Cho Park")
	gone := teacher("t4", "Dee Retired")
	gone.IsActive = false

	shift := func(tc model.Teacher, in, out, date string) {
		t.Helper()
		_, err := l.CheckIn(ctx, tc, in, date)
		require.NoError(t, err)
		if out != "" {
			_, err = l.CheckOut(ctx, tc.ID, out, date)
			require.NoError(t, err)
		}
	}
	shift(ana, "08:00", "12:00", "2023-12-20")
	shift(ana, "08:00", "16:00", "2024-01-09")
	shift(ana, "08:00", "15:30", "2024-01-10")
	shift(ben, "09:00", "", "2024-01-10")
	shift(gone, "08:00", "10:00", "2024-01-10")
	shift(ana, "08:00", "", "2024-01-08")

	s := l.Summary("2024-01-10", []model.Teacher{ana, ben, cho, gone}, 3)

	assert.Equal(t, "2024-01-10", s.Date)
	assert.Equal(t, 3, s.ActiveTeachers)
	assert.Equal(t, 1, s.Present)
	assert.Equal(t, 1, s.CheckedIn)
	assert.Equal(t, 1, s.Absent)
	assert.Equal(t, 2.0/3, s.AttendanceRate)
	assert.Equal(t, 9.5, s.DayHours, "every record of the day counts")
	assert.Equal(t, 17.5, s.MonthHours)

	ids := func(records []model.AttendanceRecord) []string {
		out := make([]string, 0, len(records))
		for _, r := range records {
			out = append(out, r.ID)
		}
		return out
	}
	assert.Equal(t, []string{"t4-rec-5", "t2-rec-4", "t1-rec-3"}, ids(s.Recent))

	all := l.Summary("2024-01-10", nil, 10)
	assert.Equal(t, []string{"t4-rec-5", "t2-rec-4", "t1-rec-3", "t1-rec-2", "t1-rec-6", "t1-rec-1"}, ids(all.Recent),
		"backfilled days sort by date")
}

func TestSummary_Empty(t *testing.T) {
	l := openTestLedger(t, store.NewMemory())

	s := l.Summary("January 10, 2024", nil, DefaultRecent)

	assert.Equal(t, "2024-01-10", s.Date)
	assert.Zero(t, s.ActiveTeachers)
	assert.Zero(t, s.AttendanceRate)
	assert.NotNil(t, s.Recent)
	assert.Empty(t, s.Recent)
}

func TestSummary_UnreadableRecordDatesSortLast(t *testing.T) {
	mem := store.NewMemory()
	mem.Put(store.KeyAttendance, `[
		{"id":"t1-0","teacher_id":"t1","teacher_name":"A","date":"sometime","check_in":"??","status":"present"},
		{"id":"t1-1","teacher_id":"t1","teacher_name":"A","date":"2024-01-09","check_in":"08:00","check_out":"09:00","status":"present"}
	]`)
	l := openTestLedger(t, mem)

	s := l.Summary("2024-01-10", nil, DefaultRecent)
	require.Len(t, s.Recent, 2)
	assert.Equal(t, "t1-1", s.Recent[0].ID)
	assert.Equal(t, 1.0, s.MonthHours)
	assert.Zero(t, s.DayHours)
}
