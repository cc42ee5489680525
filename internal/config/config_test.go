package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rollcall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ResolvesRelativePaths(t *testing.T) {
	path := writeConfig(t, `
database: data/attendance.db
timezone: UTC
export_dir: out
session_teacher: t1
`)
	dir := filepath.Dir(path)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data/attendance.db"), cfg.Database)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.ExportDir)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "t1", cfg.SessionTeacher)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_AbsoluteDatabaseKept(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "x.db")
	cfg, err := Load(writeConfig(t, "database: "+abs+"\n"))
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.Database)
	assert.Equal(t, DefaultTimezone, cfg.Timezone)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_EmptyIsDefault(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("databse: typo.db\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "databse")
}

func TestParse_RejectsBadTimezone(t *testing.T) {
	_, err := Parse([]byte("timezone: Mars/Olympus\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mars/Olympus")
}
