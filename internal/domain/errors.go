package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, contradictory trip dates).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidRange is returned when a check-out date is not after the
// check-in date. It is a validation failure with its own identity so callers
// can distinguish a bad date range from a missing field.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrInvalidRange = errors.New("check-out must be after check-in")
