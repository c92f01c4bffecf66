// Package api
// Author: momentics <momentics@gmail.com>
//
// Error taxonomy shared by the parser, route table and connection handler,
// with the status code each failure is answered with.

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/momentics/hioload-http/protocol"
)

// Common errors used across the library.
var (
	ErrParse            = protocol.ErrParse
	ErrPathNotFound     = errors.New("path not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrDuplicateRoute   = errors.New("route already registered")
	ErrListenerBind     = errors.New("listener bind failed")
	ErrHeaderTooLarge   = errors.New("request head too large")
	ErrRequestTimeout   = errors.New("request read timed out")
	ErrOverloaded       = errors.New("server overloaded")
	ErrHandlerPanic     = errors.New("handler panicked")
	ErrHandlerTimeout   = errors.New("handler deadline exceeded")
	ErrServerClosed     = errors.New("server closed")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeParse
	ErrCodePathNotFound
	ErrCodeMethodNotAllowed
	ErrCodeDuplicateRoute
	ErrCodeListenerBind
	ErrCodeHeaderTooLarge
	ErrCodeTimeout
	ErrCodeOverloaded
	ErrCodeInternal
	ErrCodeHandlerTimeout
)

var codeSentinels = map[ErrorCode]error{
	ErrCodeParse:            ErrParse,
	ErrCodePathNotFound:     ErrPathNotFound,
	ErrCodeMethodNotAllowed: ErrMethodNotAllowed,
	ErrCodeDuplicateRoute:   ErrDuplicateRoute,
	ErrCodeListenerBind:     ErrListenerBind,
	ErrCodeHeaderTooLarge:   ErrHeaderTooLarge,
	ErrCodeTimeout:          ErrRequestTimeout,
	ErrCodeOverloaded:       ErrOverloaded,
	ErrCodeInternal:         ErrHandlerPanic,
	ErrCodeHandlerTimeout:   ErrHandlerTimeout,
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if len(e.Context) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (context: %+v)", msg, e.Context)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel belonging to the error's code.
func (e *Error) Is(target error) bool {
	s, ok := codeSentinels[e.Code]
	return ok && s == target
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// Wrap creates a structured error around cause.
func Wrap(code ErrorCode, message string, cause error) *Error {
	e := NewError(code, message)
	e.Err = cause
	return e
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// StatusFor maps an error to the status code it is answered with.
// Errors outside the taxonomy map to 500.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrParse):
		return http.StatusBadRequest
	case errors.Is(err, ErrPathNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, ErrRequestTimeout):
		return http.StatusRequestTimeout
	case errors.Is(err, ErrHeaderTooLarge):
		return http.StatusRequestHeaderFieldsTooLarge
	case errors.Is(err, ErrOverloaded), errors.Is(err, ErrHandlerTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
