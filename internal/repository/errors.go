package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry indicates a write violated a unique constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
	// ErrBookingConflict indicates an admission found an active booking
	// overlapping the candidate window while holding the room lock.
	ErrBookingConflict = errors.New("repository: conflicting active booking")
	// ErrStaleStatus indicates a guarded status update matched no row,
	// i.e. the record was concurrently moved out of the expected status.
	ErrStaleStatus = errors.New("repository: status changed concurrently")
)

var (
	ErrUserNotFound    = ErrNotFound
	ErrRoomNotFound    = ErrNotFound
	ErrBookingNotFound = ErrNotFound
)
