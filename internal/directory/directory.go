// Package directory owns the set of teacher profiles.
//
// The directory loads its collection once from the store when opened and
// writes the full collection back after every mutation. Reads are served from
// memory only. Values are stored as given: no validation or normalization
// happens here, callers clean their input first.
package directory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/rollcall/internal/ident"
	"github.com/roach88/rollcall/internal/model"
	"github.com/roach88/rollcall/internal/store"
)

// maxIDAttempts bounds id regeneration when a generated id is already taken.
const maxIDAttempts = 8

// Directory manages teacher profiles.
//
// Thread-safety: all methods are safe for concurrent use.
type Directory struct {
	mu       sync.RWMutex
	store    store.Store
	ids      ident.Generator
	logger   *slog.Logger
	teachers []model.Teacher
}

// Option configures a Directory.
type Option func(*Directory)

// WithGenerator overrides the id generator (defaults to UUIDv7).
func WithGenerator(g ident.Generator) Option {
	return func(d *Directory) { d.ids = g }
}

// WithLogger sets the logger (defaults to slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(d *Directory) { d.logger = l }
}

// Open loads the teacher collection from st.
// Missing or unreadable stored data yields an empty directory.
func Open(ctx context.Context, st store.Store, opts ...Option) (*Directory, error) {
	d := &Directory{
		store:  st,
		ids:    ident.UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	teachers, err := store.LoadList[model.Teacher](ctx, st, store.KeyTeachers, d.logger)
	if err != nil {
		return nil, fmt.Errorf("open directory: %w", err)
	}
	d.teachers = teachers
	return d, nil
}

// Add assigns a fresh id to nt, appends it and returns the new Teacher.
func (d *Directory) Add(ctx context.Context, nt model.NewTeacher) (model.Teacher, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id, err := d.freshID()
	if err != nil {
		return model.Teacher{}, err
	}

	t := model.Teacher{
		ID:          id,
		Name:        nt.Name,
		Email:       nt.Email,
		Department:  nt.Department,
		EmployeeID:  nt.EmployeeID,
		PhoneNumber: nt.PhoneNumber,
		JoinDate:    nt.JoinDate,
		IsActive:    nt.IsActive,
	}

	next := append(slices.Clone(d.teachers), t)
	if err := d.flush(ctx, next); err != nil {
		return model.Teacher{}, err
	}
	d.logger.Info("teacher added", "id", t.ID, "name", t.Name)
	return t, nil
}

// Update merges the set fields of patch into the teacher with the given id.
// Unknown ids are ignored.
func (d *Directory) Update(ctx context.Context, id string, patch model.TeacherPatch) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.indexOf(id)
	if idx < 0 {
		d.logger.Debug("update ignored, teacher not found", "id", id)
		return nil
	}

	next := slices.Clone(d.teachers)
	next[idx] = patch.Apply(next[idx])
	if err := d.flush(ctx, next); err != nil {
		return err
	}
	d.logger.Info("teacher updated", "id", id)
	return nil
}

// Delete removes the teacher with the given id. Unknown ids are ignored.
// Attendance history is not touched.
func (d *Directory) Delete(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.indexOf(id)
	if idx < 0 {
		d.logger.Debug("delete ignored, teacher not found", "id", id)
		return nil
	}

	next := slices.Delete(slices.Clone(d.teachers), idx, idx+1)
	if err := d.flush(ctx, next); err != nil {
		return err
	}
	d.logger.Info("teacher deleted", "id", id)
	return nil
}

// Get returns the teacher with the given id.
func (d *Directory) Get(id string) (model.Teacher, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if idx := d.indexOf(id); idx >= 0 {
		return d.teachers[idx], true
	}
	return model.Teacher{}, false
}

// List returns all teachers in insertion order.
func (d *Directory) List() []model.Teacher {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append(make([]model.Teacher, 0, len(d.teachers)), d.teachers...)
}

// ListActive returns the active teachers in insertion order.
func (d *Directory) ListActive() []model.Teacher {
	d.mu.RLock()
	defer d.mu.RUnlock()

	active := make([]model.Teacher, 0, len(d.teachers))
	for _, t := range d.teachers {
		if t.IsActive {
			active = append(active, t)
		}
	}
	return active
}

// Search returns the teachers whose name, department, employee id or email
// contains term, ignoring case.
func (d *Directory) Search(term string) []model.Teacher {
	d.mu.RLock()
	defer d.mu.RUnlock()

	matches := make([]model.Teacher, 0, len(d.teachers))
	for _, t := range d.teachers {
		if Matches(t, term) {
			matches = append(matches, t)
		}
	}
	return matches
}

// Matches reports whether t matches the search term.
// An empty term matches everyone.
func Matches(t model.Teacher, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	caser := cases.Fold()
	needle := caser.String(norm.NFC.String(term))
	for _, field := range []string{t.Name, t.Department, t.EmployeeID, t.Email} {
		if strings.Contains(caser.String(norm.NFC.String(field)), needle) {
			return true
		}
	}
	return false
}

func (d *Directory) indexOf(id string) int {
	return slices.IndexFunc(d.teachers, func(t model.Teacher) bool { return t.ID == id })
}

// freshID returns a generated id not used by any stored teacher.
func (d *Directory) freshID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := d.ids.Generate()
		if d.indexOf(id) < 0 {
			return id, nil
		}
		d.logger.Warn("generated teacher id already taken, retrying", "id", id)
	}
	return "", fmt.Errorf("add teacher: no unique id after %d attempts", maxIDAttempts)
}

// flush persists next and makes it the in-memory collection.
// On failure the in-memory collection is left unchanged.
func (d *Directory) flush(ctx context.Context, next []model.Teacher) error {
	if err := store.SaveList(ctx, d.store, store.KeyTeachers, next); err != nil {
		return fmt.Errorf("save teachers: %w", err)
	}
	d.teachers = next
	return nil
}
