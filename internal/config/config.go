// Package config loads the rollcall configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults used when neither a flag nor the config file sets a value.
const (
	DefaultDatabase = "rollcall.db"
	DefaultTimezone = "Local"
)

// Config is the contents of a rollcall config file.
//
//	database: attendance.db
//	timezone: Europe/Lisbon
//	export_dir: exports
//	session_teacher: 0190f7a2-...
type Config struct {
	// Database is the SQLite database path. Relative paths are resolved
	// against the directory of the config file.
	Database string `yaml:"database"`

	// Timezone is an IANA zone name, "Local" or "UTC". Dates and times of day
	// are read and displayed in it.
	Timezone string `yaml:"timezone"`

	// ExportDir is where export files are written when no output path is given.
	ExportDir string `yaml:"export_dir,omitempty"`

	// SessionTeacher is the teacher id used by the session commands.
	SessionTeacher string `yaml:"session_teacher,omitempty"`
}

// Default returns the configuration used when there is no config file.
func Default() Config {
	return Config{Database: DefaultDatabase, Timezone: DefaultTimezone}
}

// Load reads the config file at path. An empty path returns Default().
// Unset keys take their default value.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}

	base := filepath.Dir(path)
	if !filepath.IsAbs(cfg.Database) {
		cfg.Database = filepath.Join(base, cfg.Database)
	}
	if cfg.ExportDir != "" && !filepath.IsAbs(cfg.ExportDir) {
		cfg.ExportDir = filepath.Join(base, cfg.ExportDir)
	}
	return cfg, nil
}

// Parse decodes YAML config content. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
