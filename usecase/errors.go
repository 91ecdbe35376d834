package usecase

import "errors"

// Error taxonomy surfaced to the HTTP layer. Missing notes and notes the
// caller cannot see are deliberately conflated into ErrNotFound so responses
// do not leak existence.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)
