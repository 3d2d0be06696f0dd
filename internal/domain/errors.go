package domain

import "errors"

var (
	// ErrValidation indicates a missing or invalid argument, raised before any I/O.
	ErrValidation = errors.New("validation failed")
	// ErrFetch indicates the remote store could not be read.
	ErrFetch = errors.New("remote fetch failed")
	// ErrPersistence indicates a remote mutation failed.
	ErrPersistence = errors.New("remote persistence failed")
	// ErrCache indicates the local snapshot store is unavailable or corrupt.
	ErrCache = errors.New("local cache unavailable")
	// ErrShiftNotFound is returned when an update matches no row for (id, user).
	ErrShiftNotFound = errors.New("shift not found")
)
