package services

import "errors"

// ErrorKind classifies the recoverable failures an operation can report.
// Every failure is surfaced to the user as a message; none is fatal.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindDuplicateUsername
	KindInvalidCredentials
	KindInvalidDateRange
	KindMissingApprover
	KindMissingOtherReason
	KindNotFound
)

// Error carries the kind plus the exact message the UI shows in its
// notification box.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of a service error, or 0 for any other error.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
