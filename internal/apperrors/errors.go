// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Code is the business error code surfaced alongside the HTTP status.
type Code string

const (
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeNotFound     Code = "NOT_FOUND"
	CodeForbidden    Code = "FORBIDDEN"
	CodeConflict     Code = "CONFLICT"
	CodeInternal     Code = "INTERNAL"
)

// Error carries an HTTP status with a user-facing message. Internal detail
// stays in the wrapped cause and is never serialized.
type Error struct {
	Code    Code
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(code Code, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

func InvalidInput(message string) *Error {
	return newError(CodeInvalidInput, http.StatusBadRequest, message)
}

func NotFound(message string) *Error {
	return newError(CodeNotFound, http.StatusNotFound, message)
}

func Forbidden(message string) *Error {
	return newError(CodeForbidden, http.StatusForbidden, message)
}

func Conflict(message string) *Error {
	return newError(CodeConflict, http.StatusConflict, message)
}

func Internal(message string, cause error) *Error {
	return &Error{Code: CodeInternal, Status: http.StatusInternalServerError, Message: message, cause: cause}
}

// FromDB translates a store-level error at the component boundary:
// record-not-found becomes NotFound, unique-index violations become
// Conflict, anything else is wrapped as Internal.
func FromDB(err error, notFoundMessage string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(notFoundMessage)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict("duplicate value for a unique field")
	default:
		return Internal("database error", err)
	}
}

// StatusOf extracts the HTTP status from an error, defaulting to 500.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// CodeOf extracts the business code from an error, defaulting to INTERNAL.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// MessageOf returns the user-facing message; internal errors surface a
// generic message so store and filesystem detail never leaks.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Code != CodeInternal {
		return appErr.Message
	}
	return "internal server error"
}

func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}
