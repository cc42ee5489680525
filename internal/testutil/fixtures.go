package testutil

import "github.com/roach88/rollcall/internal/model"

// NewTeacher returns an active teacher fixture with derived contact fields.
func NewTeacher(name, employeeID, department string) model.NewTeacher {
	return model.NewTeacher{
		Name:       name,
		Email:      employeeID + "@school.test",
		Department: department,
		EmployeeID: employeeID,
		JoinDate:   "2023-09-01",
		IsActive:   true,
	}
}

// NewInactiveTeacher returns an inactive teacher fixture.
func NewInactiveTeacher(name, employeeID, department string) model.NewTeacher {
	nt := NewTeacher(name, employeeID, department)
	nt.IsActive = false
	return nt
}
