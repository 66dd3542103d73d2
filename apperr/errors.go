package apperr

import (
	"errors"
	"net/http"
	"runtime/debug"
)

// Kind classifies a failure so the HTTP boundary can pick a status code.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// HTTPStatus maps the kind to its response status.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
	Stack   []byte
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Message: msg,
		Err:     cause,
		Stack:   debug.Stack(),
	}
}

func BadRequest(msg string) error   { return newError(KindBadRequest, msg, nil) }
func Unauthorized(msg string) error { return newError(KindUnauthorized, msg, nil) }
func NotFound(msg string) error     { return newError(KindNotFound, msg, nil) }

// Internal wraps an unexpected failure. The cause is kept for logs but
// never shown to clients.
func Internal(msg string, cause error) error {
	return newError(KindInternal, msg, cause)
}

// KindOf reports the kind of err, defaulting to KindInternal for errors
// that did not originate here.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// From returns the *Error carried by err, wrapping foreign errors as Internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return newError(KindInternal, "Internal Server Error", err)
}
