package itinerary

import (
	"errors"
	"fmt"
)

// SessionNotFoundError indicates an operation named a session id with
// no existing document.
type SessionNotFoundError struct {
	ID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("itinerary not found: %s", e.ID)
}

// DateNotFoundError indicates an operation named a date outside the
// session's fixed day range.
type DateNotFoundError struct {
	Date string
}

func (e *DateNotFoundError) Error() string {
	return fmt.Sprintf("date not in itinerary: %s", e.Date)
}

// InvalidRangeError indicates session creation with end before start.
type InvalidRangeError struct {
	Start string
	End   string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: end %s is before start %s", e.End, e.Start)
}

// ValidationError indicates a preference or activity payload failed
// schema checks. Field names the offending field and Reason the
// violated constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps a durable read/write failure. It is never
// swallowed; the in-memory cache keeps last-known-good state when the
// durable write fails.
type StorageError struct {
	Op  string // "load" or "save"
	ID  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("itinerary storage %s failed for %s: %v", e.Op, e.ID, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a session or date lookup failure,
// the "fix your input" class callers can recover from by creating the
// session or adjusting the date.
func IsNotFound(err error) bool {
	var snf *SessionNotFoundError
	var dnf *DateNotFoundError
	return errors.As(err, &snf) || errors.As(err, &dnf)
}
