package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrNotFound indicates that a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a state precondition violation, e.g. a donation
// that is no longer pending (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrDependency indicates that a downstream dependency (database,
// notification sink) is unavailable. Callers may retry with backoff.
var ErrDependency = errors.New("dependency unavailable")
