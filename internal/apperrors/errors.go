package apperrors

import "errors"

// Sentinel errors shared by services. Handlers map these to HTTP statuses;
// anything unrecognized is treated as an internal failure.
var (
	ErrValidation   = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUpstream     = errors.New("upstream failure")
)

// Validation wraps ErrValidation with a client-facing message.
func Validation(msg string) error {
	return wrapped{ErrValidation, msg}
}

// NotFound wraps ErrNotFound with a client-facing message.
func NotFound(msg string) error {
	return wrapped{ErrNotFound, msg}
}

// Unauthorized wraps ErrUnauthorized with a client-facing message.
func Unauthorized(msg string) error {
	return wrapped{ErrUnauthorized, msg}
}

// Forbidden wraps ErrForbidden with a client-facing message.
func Forbidden(msg string) error {
	return wrapped{ErrForbidden, msg}
}

// Conflict wraps ErrConflict with a client-facing message.
func Conflict(msg string) error {
	return wrapped{ErrConflict, msg}
}

type wrapped struct {
	kind error
	msg  string
}

func (w wrapped) Error() string { return w.msg }
func (w wrapped) Unwrap() error { return w.kind }
