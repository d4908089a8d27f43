package dispatch

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrParamNotFound is returned by Context.Param when the matched route does
// not bind the requested name. It signals a mismatch between a route
// pattern and its handler, which the handler should guard against.
var ErrParamNotFound = errors.New("dispatch: param not found")

// Error is a handler or middleware failure carrying the HTTP status code
// used when the dispatcher converts it into a response at the outermost
// dispatch boundary.
type Error struct {
	Status int
	Err    error
}

// NewError wraps err with an associated HTTP status.
func NewError(status int, err error) *Error {
	return &Error{Status: status, Err: err}
}

// Errorf formats a new Error with an associated HTTP status.
func Errorf(status int, format string, args ...any) *Error {
	return &Error{Status: status, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return http.StatusText(e.Status)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusOf returns the HTTP status associated with err. A nil error maps to
// 200 OK, and errors that do not carry a status anywhere in their chain map
// to 500 Internal Server Error.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var de *Error
	if errors.As(err, &de) && de.Status != 0 {
		return de.Status
	}
	return http.StatusInternalServerError
}
