package service

import "errors"

// Sentinel errors shared by all services. Handlers map them onto HTTP
// status codes in one place; anything else is treated as internal.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
	ErrInvalidStatus    = errors.New("invalid status transition")
)
