package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	var name string
	err = s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='blobs'").Scan(&name)
	if err != nil {
		t.Errorf("blobs table not found after idempotent opens: %v", err)
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/test.db")
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &SQLite{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

func TestPragma_JournalMode(t *testing.T) {
	s := createTestStore(t)
	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
}

func TestPragma_BusyTimeout(t *testing.T) {
	s := createTestStore(t)
	if err := s.verifyPragma("busy_timeout", "5000"); err != nil {
		t.Error(err)
	}
}

func TestPragma_UserVersion(t *testing.T) {
	s := createTestStore(t)
	if err := s.verifyPragma("user_version", "1"); err != nil {
		t.Error(err)
	}
}

func TestSQLite_LoadMissingKey(t *testing.T) {
	s := createTestStore(t)

	value, found, err := s.Load(context.Background(), KeyTeachers)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestSQLite_SaveThenLoad(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, KeyTeachers, `[{"id":"1"}]`))

	value, found, err := s.Load(ctx, KeyTeachers)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"1"}]`, value)
}

func TestSQLite_SaveOverwrites(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, KeyAttendance, "[]"))
	require.NoError(t, s.Save(ctx, KeyAttendance, `[{"id":"r1"}]`))

	value, _, err := s.Load(ctx, KeyAttendance)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"r1"}]`, value)

	rev, err := s.Revision(ctx, KeyAttendance)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rev)
}

func TestSQLite_SaveSameValueIsIdempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	nowFunc = func() time.Time { return time.UnixMilli(1000) }
	require.NoError(t, s.Save(ctx, KeySession, "{}"))
	nowFunc = func() time.Time { return time.UnixMilli(2000) }
	require.NoError(t, s.Save(ctx, KeySession, "{}"))
	nowFunc = time.Now // reset

	rev, err := s.Revision(ctx, KeySession)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rev)

	var updatedAt int64
	require.NoError(t, s.db.QueryRow("SELECT updated_at FROM blobs WHERE key = ?", KeySession).Scan(&updatedAt))
	assert.Equal(t, int64(1000), updatedAt)
}

func TestSQLite_KeysAreIndependent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, KeyTeachers, "teachers"))
	require.NoError(t, s.Save(ctx, KeyAttendance, "attendance"))

	v1, _, err := s.Load(ctx, KeyTeachers)
	require.NoError(t, err)
	v2, _, err := s.Load(ctx, KeyAttendance)
	require.NoError(t, err)
	assert.Equal(t, "teachers", v1)
	assert.Equal(t, "attendance", v2)

	rev, err := s.Revision(ctx, KeySession)
	require.NoError(t, err)
	assert.Zero(t, rev)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Save(ctx, KeyTeachers, `["a"]`))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	value, found, err := s2.Load(ctx, KeyTeachers)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `["a"]`, value)
}

func TestMemory_SaveLoad(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, found, err := m.Load(ctx, KeyTeachers)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.Save(ctx, KeyTeachers, "x"))
	require.NoError(t, m.Save(ctx, KeyTeachers, "y"))

	value, found, err := m.Load(ctx, KeyTeachers)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "y", value)
	assert.Equal(t, 2, m.Saves(KeyTeachers))
}

func TestMemory_CancelledContext(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Save(ctx, KeyTeachers, "x"), context.Canceled)
	_, _, err := m.Load(ctx, KeyTeachers)
	assert.ErrorIs(t, err, context.Canceled)
}
