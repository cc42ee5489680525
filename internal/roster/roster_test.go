package roster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rollcall/internal/directory"
	"github.com/roach88/rollcall/internal/model"
	"github.com/roach88/rollcall/internal/store"
	"github.com/roach88/rollcall/internal/testutil"
)

func TestLoad(t *testing.T) {
	teachers, err := Load("testdata/staff.cue")
	require.NoError(t, err)
	require.Len(t, teachers, 2)

	assert.Equal(t, model.NewTeacher{
		Name:        "Ana Lima",
		Email:       "ana@school.test",
		Department:  "Math",
		EmployeeID:  "E1",
		PhoneNumber: "555-0101",
		JoinDate:    "2023-09-01",
		IsActive:    true,
	}, teachers[0])
	assert.False(t, teachers[1].IsActive)
	assert.Empty(t, teachers[1].PhoneNumber)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/nope.cue")
	assert.Error(t, err)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "missing employee id",
			src: `teachers: [{
				name: "Ana Lima", email: "ana@school.test", department: "Math", join_date: "2023-09-01"
			}]`,
		},
		{
			name: "malformed join date",
			src: `teachers: [{
				name: "Ana Lima", email: "ana@school.test", department: "Math", employee_id: "E1", join_date: "Sept 1"
			}]`,
		},
		{
			name: "impossible join date",
			src: `teachers: [{
				name: "Ana Lima", email: "ana@school.test", department: "Math", employee_id: "E1", join_date: "2023-02-30"
			}]`,
		},
		{
			name: "empty name",
			src: `teachers: [{
				name: "", email: "ana@school.test", department: "Math", employee_id: "E1", join_date: "2023-09-01"
			}]`,
		},
		{
			name: "unknown field",
			src: `teachers: [{
				name: "Ana Lima", email: "ana@school.test", department: "Math", employee_id: "E1", join_date: "2023-09-01", salary: 1
			}]`,
		},
		{
			name: "syntax error",
			src:  `teachers: [{`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "roster.cue")
			require.Error(t, err)

			var rerr *Error
			assert.ErrorAs(t, err, &rerr)
		})
	}
}

func TestParse_CleansText(t *testing.T) {
	teachers, err := Parse([]byte(`teachers: [{
		name: "  Ana Lima ", email: "ana@school.test", department: "Math\t", employee_id: " E1", join_date: "2023-09-01"
	}]`), "roster.cue")
	require.NoError(t, err)
	require.Len(t, teachers, 1)

	assert.Equal(t, "Ana Lima", teachers[0].Name)
	assert.Equal(t, "Math", teachers[0].Department)
	assert.Equal(t, "E1", teachers[0].EmployeeID)
}

func TestImport_SkipsKnownEmployeeIDs(t *testing.T) {
	ctx := context.Background()
	dir, err := directory.Open(ctx, store.NewMemory(), directory.WithGenerator(testutil.NewSequenceGenerator("t")))
	require.NoError(t, err)

	_, err = dir.Add(ctx, testutil.NewTeacher("Ana Lima", "E1", "Math"))
	require.NoError(t, err)

	res, err := Import(ctx, dir, []model.NewTeacher{
		testutil.NewTeacher("Ana Lima", "E1", "Math"),
		testutil.NewTeacher("Ben Okafor", "E2", "Science"),
		testutil.NewTeacher("Ben Again", "E2", "Science"),
	})
	require.NoError(t, err)

	require.Len(t, res.Added, 1)
	assert.Equal(t, "Ben Okafor", res.Added[0].Name)
	assert.Equal(t, []string{"E1", "E2"}, res.Skipped)
	assert.Len(t, dir.List(), 2)
}
