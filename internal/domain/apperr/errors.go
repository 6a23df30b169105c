// Package apperr defines the error kinds surfaced to HTTP callers.
//
// Every error that reaches a handler is either an *Error, whose message is
// safe to show, or an internal failure that gets logged and replaced by a
// generic message.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrStaleSession       = errors.New("stale session")
	ErrPersistence        = errors.New("persistence error")
)

// InternalMessage is shown for anything that is not an *Error.
const InternalMessage = "internal server error"

// Error pairs a kind sentinel with a user-facing message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// New builds an *Error of the given kind.
func New(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Message returns the user-facing text of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return InternalMessage
}

// Public reports whether err carries a message meant for the caller.
func Public(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
