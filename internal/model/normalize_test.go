package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTeacher_Normalized(t *testing.T) {
	// "e" + combining acute accent normalizes to a single rune under NFC
	got := NewTeacher{Name: "  Rene\u0301 Dupont ", Department: " Arts\t", IsActive: true}.Normalized()

	assert.Equal(t, "Ren\u00e9 Dupont", got.Name)
	assert.Equal(t, "Arts", got.Department)
	assert.True(t, got.IsActive)
}

func TestTeacherPatch_Normalized(t *testing.T) {
	name := " Ana "
	orig := TeacherPatch{Name: &name}
	got := orig.Normalized()

	require.NotNil(t, got.Name)
	assert.Equal(t, "Ana", *got.Name)
	assert.Nil(t, got.Email, "unset fields stay unset")
	assert.Equal(t, " Ana ", name, "input is not modified")
}
