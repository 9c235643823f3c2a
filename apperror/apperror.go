// Package apperror is the error taxonomy shared by the rental and review
// flows. Every failure that reaches a handler is mapped to an HTTP status and
// a human readable message from here.
package apperror

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies a failure
type Kind int

// Error kinds, each with a fixed HTTP status
const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindAuthorization
	KindUnavailable
	KindInvalidState
)

var kindStatus = map[Kind]int{
	KindInternal:      http.StatusInternalServerError,
	KindValidation:    http.StatusBadRequest,
	KindNotFound:      http.StatusNotFound,
	KindAuthorization: http.StatusForbidden,
	KindUnavailable:   http.StatusBadRequest,
	KindInvalidState:  http.StatusBadRequest,
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindNotFound:
		return "NotFoundError"
	case KindAuthorization:
		return "AuthorizationError"
	case KindUnavailable:
		return "UnavailableError"
	case KindInvalidState:
		return "InvalidStateError"
	}
	return "InternalError"
}

// Error is a classified failure with a message safe to show to callers
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports missing or malformed input
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound reports an absent document
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Authorization reports a caller acting outside their role or ownership
func Authorization(message string) error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// Unavailable reports an asset that cannot be booked
func Unavailable(message string) error {
	return &Error{Kind: KindUnavailable, Message: message}
}

// InvalidState reports an illegal status transition
func InvalidState(message string) error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// Internal wraps an unexpected failure, recording the stack at the call site
func Internal(err error, message string) error {
	return &Error{Kind: KindInternal, Message: message, Err: errors.WithStack(err)}
}

// KindOf returns the kind of err, treating unclassified errors as internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is classified as kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusCode maps err to its HTTP status
func StatusCode(err error) int {
	return kindStatus[KindOf(err)]
}

// Message returns the caller facing message of err
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}
