package chatlog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateEventTime(t *testing.T) {
	assert.NoError(t, ValidateEventTime(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))
	assert.NoError(t, ValidateEventTime(time.Unix(0, 0)))

	assert.ErrorIs(t, ValidateEventTime(time.Time{}), ErrInvalidTimestamp)
	assert.ErrorIs(t, ValidateEventTime(time.Date(1969, 12, 31, 23, 59, 59, 0, time.UTC)), ErrInvalidTimestamp)
	assert.ErrorIs(t, ValidateEventTime(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)), ErrInvalidTimestamp)
}

func TestStorageError(t *testing.T) {
	assert.NoError(t, StorageError("op", nil))

	cause := errors.New("database is locked")
	err := StorageError("insert message", cause)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "insert message")

	// already classified errors pass through unchanged
	assert.Equal(t, err, StorageError("commit", err))

	fk := ErrForeignKeyViolation
	assert.Equal(t, fk, StorageError("insert message", fk))
}
