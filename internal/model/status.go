package model

// Status is the attendance state of a record or a derived daily entry.
type Status string

const (
	// StatusPartial marks an open record: checked in, not yet checked out.
	StatusPartial Status = "partial"

	// StatusPresent marks a completed record with total hours computed.
	StatusPresent Status = "present"

	// StatusAbsent is derived for a teacher/date pair with no record. Never stored.
	StatusAbsent Status = "absent"
)

// Label returns the human-readable badge text for s.
func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "Present"
	case StatusPartial:
		return "Checked In"
	default:
		return "Absent"
	}
}

// IsStored reports whether s may appear on a persisted record.
func (s Status) IsStored() bool {
	return s == StatusPartial || s == StatusPresent
}
