package ledger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := newError(ErrCodeNotCheckedIn, "t1", "2024-01-10", nil)
	assert.Equal(t, "not checked in (teacher=t1, date=2024-01-10)", err.Error())

	cause := errors.New("parsing time")
	err = newError(ErrCodeInvalidTime, "t1", "bad", cause)
	assert.ErrorIs(t, err, ErrInvalidTime)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "parsing time")
}

func TestError_Helpers(t *testing.T) {
	wrapped := fmt.Errorf("cli: %w", newError(ErrCodeAlreadyCheckedIn, "t1", "2024-01-10", nil))

	assert.True(t, IsAlreadyCheckedIn(wrapped))
	assert.False(t, IsNotCheckedIn(wrapped))
	assert.False(t, IsAlreadyCheckedIn(errors.New("other")))
	assert.False(t, IsAlreadyCheckedIn(nil))
}
