package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanText trims surrounding whitespace and NFC-normalizes s, so visually
// identical names compare and search equal.
func CleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Normalized returns nt with CleanText applied to every text field.
func (nt NewTeacher) Normalized() NewTeacher {
	nt.Name = CleanText(nt.Name)
	nt.Email = CleanText(nt.Email)
	nt.Department = CleanText(nt.Department)
	nt.EmployeeID = CleanText(nt.EmployeeID)
	nt.PhoneNumber = CleanText(nt.PhoneNumber)
	nt.JoinDate = CleanText(nt.JoinDate)
	return nt
}

// Normalized returns p with CleanText applied to every set text field.
func (p TeacherPatch) Normalized() TeacherPatch {
	clean := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := CleanText(*s)
		return &v
	}
	p.Name = clean(p.Name)
	p.Email = clean(p.Email)
	p.Department = clean(p.Department)
	p.EmployeeID = clean(p.EmployeeID)
	p.PhoneNumber = clean(p.PhoneNumber)
	p.JoinDate = clean(p.JoinDate)
	return p
}
