package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure so the transport layer can map it to a status
// code without inspecting messages.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindDependency   ErrorKind = "dependency"
)

// Error is the single error type returned by services and repositories.
// Message is safe to show to clients except for KindDependency.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	ErrEmailTaken         = &Error{Kind: KindConflict, Message: "email already registered"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "invalid credentials"}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrAccountNotFound    = &Error{Kind: KindNotFound, Message: "account not found"}
	ErrProfileNotFound    = &Error{Kind: KindNotFound, Message: "profile not found"}
	ErrShowNotFound       = &Error{Kind: KindNotFound, Message: "show not found"}
	ErrSubmissionInFlight = &Error{Kind: KindConflict, Message: "submission already in progress"}
)

// Validation builds a KindValidation error with a client-facing message.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Dependency wraps a database or storage failure. op names the failed step and
// only ever reaches logs.
func Dependency(op string, err error) *Error {
	return &Error{Kind: KindDependency, Message: op, Err: err}
}

// KindOf reports the kind of err. Errors that are not *Error are treated as
// dependency failures.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindDependency
}
