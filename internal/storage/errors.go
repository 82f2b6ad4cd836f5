package storage

import "errors"

var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource conflict (e.g., duplicate key)")
	// ErrForbidden is returned when a write is refused because of who is making it.
	ErrForbidden = errors.New("write not permitted for this actor")
	// ErrStateMismatch is returned by conditioned writes whose expected state
	// no longer holds at commit time.
	ErrStateMismatch = errors.New("record is not in the expected state")
	// ErrUnavailable means the store could not complete the operation (connection
	// loss, timeout). Callers may retry.
	ErrUnavailable = errors.New("store unavailable")
)
