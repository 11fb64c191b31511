package domain

import "errors"

// ErrNotFound is returned by API client and page functions when the requested
// resource does not exist on the backend.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails form-level validation
// (e.g. missing required field, malformed email, negative cost).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDateParse is returned by date utilities when a date-only string is empty
// or malformed. Callers must treat this as non-fatal: the offending item is
// excluded from layout, never the whole render.
var ErrDateParse = errors.New("date parse error")

// ErrInvalidRange is returned when a date range's end precedes its start after
// normalization. Same recovery policy as ErrDateParse.
var ErrInvalidRange = errors.New("invalid date range")

// ErrFetch is returned by the API client for network failures and unexpected
// HTTP statuses. Pages surface it as a retryable error, never a crash.
var ErrFetch = errors.New("fetch error")
