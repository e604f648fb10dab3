package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller's identity could not be established.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller's role or department does not permit the action.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidState indicates an action was attempted from a status that does not permit it.
var ErrInvalidState = errors.New("invalid state for requested action")

// ErrConflict indicates a concurrent modification was detected (the expected status
// changed between read and write).
var ErrConflict = errors.New("conflicting concurrent modification")
