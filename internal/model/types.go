package model

// Teacher is a teacher profile held by the directory.
type Teacher struct {
	ID          string `json:"id"` // Assigned at creation, immutable
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	EmployeeID  string `json:"employee_id"`
	PhoneNumber string `json:"phone_number,omitempty"`
	JoinDate    string `json:"join_date"` // YYYY-MM-DD
	IsActive    bool   `json:"is_active"` // Inactive teachers keep their history
}

// NewTeacher contains the information needed to create a Teacher.
type NewTeacher struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	EmployeeID  string `json:"employee_id"`
	PhoneNumber string `json:"phone_number,omitempty"`
	JoinDate    string `json:"join_date"`
	IsActive    bool   `json:"is_active"`
}

// TeacherPatch defines what may be changed on an existing Teacher.
// Nil fields are left untouched.
type TeacherPatch struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Department  *string `json:"department,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	JoinDate    *string `json:"join_date,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p TeacherPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Department == nil && p.EmployeeID == nil &&
		p.PhoneNumber == nil && p.JoinDate == nil && p.IsActive == nil
}

// Apply returns t with the set fields of p merged in. The ID never changes.
func (p TeacherPatch) Apply(t Teacher) Teacher {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Email != nil {
		t.Email = *p.Email
	}
	if p.Department != nil {
		t.Department = *p.Department
	}
	if p.EmployeeID != nil {
		t.EmployeeID = *p.EmployeeID
	}
	if p.PhoneNumber != nil {
		t.PhoneNumber = *p.PhoneNumber
	}
	if p.JoinDate != nil {
		t.JoinDate = *p.JoinDate
	}
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}
	return t
}

// AttendanceRecord is one check-in, completed in place by its check-out.
type AttendanceRecord struct {
	ID          string   `json:"id"`
	TeacherID   string   `json:"teacher_id"`
	TeacherName string   `json:"teacher_name"` // Snapshot taken at check-in
	Date        string   `json:"date"`         // YYYY-MM-DD, derived from CheckInAt
	CheckIn     string   `json:"check_in"`     // HH:MM, derived from CheckInAt
	CheckOut    string   `json:"check_out,omitempty"`
	Status      Status   `json:"status"`
	TotalHours  *float64 `json:"total_hours,omitempty"` // Set iff CheckOut is set
	Notes       string   `json:"notes,omitempty"`
	CheckInAt   int64    `json:"check_in_at,omitempty"`  // Epoch milliseconds
	CheckOutAt  int64    `json:"check_out_at,omitempty"` // Epoch milliseconds
}

// IsOpen reports whether the record is still waiting for its check-out.
func (r AttendanceRecord) IsOpen() bool {
	return r.CheckOut == "" && r.CheckOutAt == 0
}

// CheckInStatus is the per-day check-in state of one teacher.
type CheckInStatus struct {
	IsCheckedIn bool   `json:"is_checked_in"`
	CheckInTime string `json:"check_in_time"`
}

// Stats aggregates a set of attendance records.
type Stats struct {
	TotalDays      int     `json:"total_days"`
	PresentDays    int     `json:"present_days"`
	TotalHours     float64 `json:"total_hours"`
	AverageHours   float64 `json:"average_hours"`
	AttendanceRate float64 `json:"attendance_rate"` // PresentDays / TotalDays, 0..1
}

// DailyEntry joins an active teacher with their record for one day.
// Record is nil and Status is StatusAbsent when the teacher has no record.
type DailyEntry struct {
	Teacher Teacher           `json:"teacher"`
	Record  *AttendanceRecord `json:"record,omitempty"`
	Status  Status            `json:"status"`
}

// DailyView is the attendance overview of a single day.
type DailyView struct {
	Date    string       `json:"date"`
	Entries []DailyEntry `json:"entries"`
	Present int          `json:"present"`
	Partial int          `json:"partial"`
	Absent  int          `json:"absent"`
}

// Summary is the dashboard overview of one day and its month.
type Summary struct {
	Date           string             `json:"date"`
	ActiveTeachers int                `json:"active_teachers"`
	Present        int                `json:"present"`    // Active teachers checked out for the day
	CheckedIn      int                `json:"checked_in"` // Active teachers still checked in
	Absent         int                `json:"absent"`
	AttendanceRate float64            `json:"attendance_rate"` // (Present + CheckedIn) / ActiveTeachers, 0..1
	DayHours       float64            `json:"day_hours"`
	MonthHours     float64            `json:"month_hours"`
	Recent         []AttendanceRecord `json:"recent"` // Latest days first
}
