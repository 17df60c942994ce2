// Package chatlog holds the error taxonomy shared by the chat session core.
package chatlog

import (
	"errors"
	"fmt"
	"time"
)

var (
	// client-caused: missing or empty username or message text
	ErrInvalidPayload = errors.New("invalid payload")

	// client-caused: event time missing or outside the storable range
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// transient: the storage medium is unreachable or a write failed
	ErrStorage = errors.New("storage error")

	// internal consistency failure: a message referenced a session that does not exist
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// read accessors only
	ErrNotFound = errors.New("not found")
)

var (
	minEventTime = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxEventTime = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
)

// wraps a storage failure so callers can match it with errors.Is(err, ErrStorage)
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrStorage) || errors.Is(err, ErrForeignKeyViolation) {
		return err
	}

	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// checks that an event time can be stored and ordered against stored timestamps
func ValidateEventTime(t time.Time) error {
	if t.IsZero() {
		return fmt.Errorf("%w: event time is required", ErrInvalidTimestamp)
	}

	if t.Before(minEventTime) || t.After(maxEventTime) {
		return fmt.Errorf("%w: event time %s out of range", ErrInvalidTimestamp, t.Format(time.RFC3339))
	}

	return nil
}
