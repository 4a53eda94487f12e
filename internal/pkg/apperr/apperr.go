// Package apperr carries HTTP-aware application errors from services to handlers.
package apperr

import (
	"errors"
	"net/http"
)

// Error is a typed application error with the HTTP status it should surface as.
type Error struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates an error without a cause.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap copies base, attaches err as the cause and optionally replaces the message.
func Wrap(err error, base *Error, message string) *Error {
	if err == nil {
		return nil
	}
	if base == nil {
		base = ErrInternal
	}
	c := *base
	if message != "" {
		c.Message = message
	}
	c.Err = err
	return &c
}

// WithMessage copies base with a new message.
func WithMessage(base *Error, message string) *Error {
	c := *base
	c.Message = message
	return &c
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// Status returns the HTTP status for err, 500 for untyped errors.
func Status(err error) int {
	if e, ok := As(err); ok && e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Message returns the client facing message for err.
func Message(err error) string {
	if e, ok := As(err); ok {
		if e.Message != "" {
			return e.Message
		}
		if e.Err != nil {
			return e.Err.Error()
		}
		return e.Code
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

var (
	ErrBadRequest  = New("bad_request", http.StatusBadRequest, "")
	ErrForbidden   = New("forbidden", http.StatusForbidden, "")
	ErrNotFound    = New("not_found", http.StatusNotFound, "")
	ErrInternal    = New("internal_error", http.StatusInternalServerError, "")
	ErrUnavailable = New("service_unavailable", http.StatusServiceUnavailable, "")
)
