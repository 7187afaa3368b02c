package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "VALIDATION"
	KindAuthRequired ErrorKind = "AUTH_REQUIRED"
	KindAccessDenied ErrorKind = "ACCESS_DENIED"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindConflict     ErrorKind = "CONFLICT"
	KindInvalidState ErrorKind = "INVALID_STATE"
	KindNoOp         ErrorKind = "NO_OP"
	KindInternal     ErrorKind = "INTERNAL"
)

// Error is the failure type returned by services. Handlers map Kind to an
// HTTP status; Message is safe to show to the caller.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func ErrValidation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func ErrAccessDenied(msg string) *Error { return &Error{Kind: KindAccessDenied, Message: msg} }
func ErrNotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func ErrConflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }
func ErrInvalidState(msg string) *Error { return &Error{Kind: KindInvalidState, Message: msg} }
func ErrNoOp(msg string) *Error         { return &Error{Kind: KindNoOp, Message: msg} }

func ErrAuthRequired(msg string) *Error {
	return &Error{Kind: KindAuthRequired, Message: msg}
}

// KindOf returns the kind of the first domain error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
