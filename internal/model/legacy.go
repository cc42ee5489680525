package model

import "encoding/json"

// Older versions stored collections with camelCase keys (teacherId,
// checkIn, totalHours, ...). Both Teacher and AttendanceRecord accept those
// keys on decode; snake_case keys win when both are present. Encoding always
// uses snake_case.

// UnmarshalJSON decodes a teacher in either key style.
func (t *Teacher) UnmarshalJSON(data []byte) error {
	type plain Teacher
	var aux struct {
		plain
		LegacyEmployeeID  string `json:"employeeId"`
		LegacyPhoneNumber string `json:"phoneNumber"`
		LegacyJoinDate    string `json:"joinDate"`
		LegacyIsActive    *bool  `json:"isActive"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*t = Teacher(aux.plain)
	fallback(&t.EmployeeID, aux.LegacyEmployeeID)
	fallback(&t.PhoneNumber, aux.LegacyPhoneNumber)
	fallback(&t.JoinDate, aux.LegacyJoinDate)
	if aux.LegacyIsActive != nil && !hasKey(data, "is_active") {
		t.IsActive = *aux.LegacyIsActive
	}
	return nil
}

// UnmarshalJSON decodes an attendance record in either key style.
func (r *AttendanceRecord) UnmarshalJSON(data []byte) error {
	type plain AttendanceRecord
	var aux struct {
		plain
		LegacyTeacherID   string   `json:"teacherId"`
		LegacyTeacherName string   `json:"teacherName"`
		LegacyCheckIn     string   `json:"checkIn"`
		LegacyCheckOut    string   `json:"checkOut"`
		LegacyTotalHours  *float64 `json:"totalHours"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = AttendanceRecord(aux.plain)
	fallback(&r.TeacherID, aux.LegacyTeacherID)
	fallback(&r.TeacherName, aux.LegacyTeacherName)
	fallback(&r.CheckIn, aux.LegacyCheckIn)
	fallback(&r.CheckOut, aux.LegacyCheckOut)
	if r.TotalHours == nil {
		r.TotalHours = aux.LegacyTotalHours
	}
	return nil
}

func fallback(dst *string, legacy string) {
	if *dst == "" {
		*dst = legacy
	}
}

// hasKey reports whether the top-level JSON object data has key.
func hasKey(data []byte, key string) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return false
	}
	_, ok := fields[key]
	return ok
}
