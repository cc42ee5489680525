// Package roster imports teachers in bulk from CUE roster files.
//
// A roster file has a single top-level field:
//
//	teachers: [
//		{
//			name:        "Ana Lima"
//			email:       "ana@school.test"
//			department:  "Math"
//			employee_id: "E1"
//			join_date:   "2023-09-01"
//		},
//	]
//
// Entries are unified with the embedded #Roster schema before decoding, so a
// missing field, a malformed join date or an unknown field rejects the file.
// is_active defaults to true.
package roster

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/rollcall/internal/model"
)

//go:embed schema.cue
var schemaSource string

// Error reports an invalid roster file, with the position of the first problem.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Load reads and validates the roster file at path.
func Load(path string) ([]model.NewTeacher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return Parse(data, path)
}

// Parse validates CUE roster source and decodes its teachers.
// filename is used in error positions only.
func Parse(data []byte, filename string) ([]model.NewTeacher, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile roster schema: %w", err)
	}

	src := ctx.CompileBytes(data, cue.Filename(filename))
	if err := src.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v := schema.LookupPath(cue.ParsePath("#Roster")).Unify(src)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var decoded struct {
		Teachers []model.NewTeacher `json:"teachers"`
	}
	if err := v.Decode(&decoded); err != nil {
		return nil, formatCUEError(err)
	}

	teachersVal := v.LookupPath(cue.ParsePath("teachers"))
	for i := range decoded.Teachers {
		t := decoded.Teachers[i].Normalized()
		decoded.Teachers[i] = t
		if _, err := time.Parse("2006-01-02", t.JoinDate); err != nil {
			return nil, &Error{
				Message: fmt.Sprintf("teachers.%d.join_date: %q is not a calendar date", i, t.JoinDate),
				Pos:     teachersVal.LookupPath(cue.MakePath(cue.Index(i), cue.Str("join_date"))).Pos(),
			}
		}
	}
	if decoded.Teachers == nil {
		decoded.Teachers = []model.NewTeacher{}
	}
	return decoded.Teachers, nil
}

// Directory is the part of the teacher directory an import needs.
type Directory interface {
	List() []model.Teacher
	Add(ctx context.Context, nt model.NewTeacher) (model.Teacher, error)
}

// Result summarizes an import.
type Result struct {
	Added   []model.Teacher `json:"added"`
	Skipped []string        `json:"skipped"` // Employee ids already in the directory
}

// Import adds entries to dir, skipping those whose employee id is already
// present, either in dir or earlier in entries.
func Import(ctx context.Context, dir Directory, entries []model.NewTeacher) (Result, error) {
	res := Result{Added: []model.Teacher{}, Skipped: []string{}}

	seen := make(map[string]bool)
	for _, t := range dir.List() {
		seen[t.EmployeeID] = true
	}

	for _, nt := range entries {
		if seen[nt.EmployeeID] {
			res.Skipped = append(res.Skipped, nt.EmployeeID)
			continue
		}
		t, err := dir.Add(ctx, nt)
		if err != nil {
			return res, fmt.Errorf("import %s: %w", nt.EmployeeID, err)
		}
		seen[nt.EmployeeID] = true
		res.Added = append(res.Added, t)
	}
	return res, nil
}

// formatCUEError converts the first CUE error into an *Error with position info.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	msg := errors.Details(first, nil)
	if positions := errors.Positions(first); len(positions) > 0 {
		return &Error{Message: first.Error(), Pos: positions[0]}
	}
	return &Error{Message: msg}
}
