package domain

import "errors"

// Error kinds. Use errors.Is to classify; Error() yields a message safe to
// show to API clients.
var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("upstream failure")
)

type kindError struct {
	kind  error
	msg   string
	cause error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

func Validation(msg string) error   { return &kindError{kind: ErrValidation, msg: msg} }
func Unauthorized(msg string) error { return &kindError{kind: ErrUnauthorized, msg: msg} }
func Conflict(msg string) error     { return &kindError{kind: ErrConflict, msg: msg} }
func NotFound(msg string) error     { return &kindError{kind: ErrNotFound, msg: msg} }

// Upstream marks cause as a failure of an external provider. The message
// hides the cause; it stays reachable through errors.Is/As.
func Upstream(msg string, cause error) error {
	return &kindError{kind: ErrUpstream, msg: msg, cause: cause}
}
