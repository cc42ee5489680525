package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every *Error matches exactly one of these via errors.Is.
var (
	ErrAlreadyCheckedIn      = errors.New("already checked in")
	ErrNotCheckedIn          = errors.New("not checked in")
	ErrCheckOutBeforeCheckIn = errors.New("check-out is earlier than check-in")
	ErrInvalidTime           = errors.New("invalid date or time")
)

// ErrorCode categorizes ledger errors.
type ErrorCode string

const (
	// ErrCodeAlreadyCheckedIn indicates an open record already exists for the teacher and date.
	ErrCodeAlreadyCheckedIn ErrorCode = "ALREADY_CHECKED_IN"

	// ErrCodeNotCheckedIn indicates there is no open record to check out.
	ErrCodeNotCheckedIn ErrorCode = "NOT_CHECKED_IN"

	// ErrCodeCheckOutBeforeCheckIn indicates a check-out time earlier than the check-in.
	ErrCodeCheckOutBeforeCheckIn ErrorCode = "CHECKOUT_BEFORE_CHECKIN"

	// ErrCodeInvalidTime indicates a date or time-of-day string that does not parse.
	ErrCodeInvalidTime ErrorCode = "INVALID_TIME"
)

var sentinels = map[ErrorCode]error{
	ErrCodeAlreadyCheckedIn:      ErrAlreadyCheckedIn,
	ErrCodeNotCheckedIn:          ErrNotCheckedIn,
	ErrCodeCheckOutBeforeCheckIn: ErrCheckOutBeforeCheckIn,
	ErrCodeInvalidTime:           ErrInvalidTime,
}

// Error is returned by ledger operations that reject a request.
// The ledger state is unchanged whenever an *Error is returned.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// TeacherID identifies the affected teacher, if known.
	TeacherID string

	// Date is the attendance day of the request, if known.
	Date string

	// Err is the underlying cause (e.g. a time.ParseError).
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := string(e.Code)
	if s, ok := sentinels[e.Code]; ok {
		msg = s.Error()
	}
	if e.TeacherID != "" && e.Date != "" {
		msg = fmt.Sprintf("%s (teacher=%s, date=%s)", msg, e.TeacherID, e.Date)
	} else if e.TeacherID != "" {
		msg = fmt.Sprintf("%s (teacher=%s)", msg, e.TeacherID)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error for e.Code.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Code]
	return ok && s == target
}

// IsAlreadyCheckedIn returns true if err reports a duplicate check-in.
func IsAlreadyCheckedIn(err error) bool {
	return errors.Is(err, ErrAlreadyCheckedIn)
}

// IsNotCheckedIn returns true if err reports a check-out without an open record.
func IsNotCheckedIn(err error) bool {
	return errors.Is(err, ErrNotCheckedIn)
}

func newError(code ErrorCode, teacherID, date string, cause error) *Error {
	return &Error{Code: code, TeacherID: teacherID, Date: date, Err: cause}
}
