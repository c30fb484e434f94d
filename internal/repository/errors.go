package repository

import "errors"

var (
	// ErrStatusConflict means a conditional status update matched no row:
	// the expected prior status was gone by the time the write ran.
	ErrStatusConflict = errors.New("status changed concurrently")

	// ErrTruckUnavailable means a truck could not be moved out of
	// AVAILABLE because another assignment got there first.
	ErrTruckUnavailable = errors.New("tow truck is not available")
)
