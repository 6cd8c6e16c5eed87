package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrDuplicate
	ErrInternal
)

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

// Duplicate signals a uniqueness-constraint rejection, e.g. two leads
// sharing an email. It is a business-rule outcome, not a failure.
func Duplicate(message string) *AppError {
	return &AppError{
		Code:    ErrDuplicate,
		Message: message,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// CodeOf extracts the ErrorCode from err, or ErrInternal when err is not an
// AppError.
func CodeOf(err error) ErrorCode {
	var app *AppError
	if errors.As(err, &app) {
		return app.Code
	}
	return ErrInternal
}

// IsDuplicate reports whether err is a uniqueness rejection.
func IsDuplicate(err error) bool {
	return CodeOf(err) == ErrDuplicate
}
