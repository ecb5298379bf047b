// Package errors defines the coded errors returned by nafig's packages.
//
// Each [Error] carries a [Code] so callers can tell input problems (bad bin
// counts, incomplete hue mappings, unreadable files) from internal faults
// without matching on message text. The CLI maps user errors to exit
// status 2.
//
//	if n < 1 {
//		return errors.Invalid("num_bins must be >= 1, got %d", n)
//	}
//	...
//	return errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"  // bad options, hue mappings or data
	ErrCodeInvalidFormat Code = "INVALID_FORMAT" // unparseable file contents
	ErrCodeInvalidPath   Code = "INVALID_PATH"   // unusable file path
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeUnsupported   Code = "UNSUPPORTED" // unknown output or input format
	ErrCodeInternal      Code = "INTERNAL_ERROR"
)

// UserError reports whether the code describes a problem the caller can fix
// by changing their input, as opposed to a fault in nafig itself.
func (c Code) UserError() bool {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidPath,
		ErrCodeFileNotFound, ErrCodeUnsupported:
		return true
	}
	return false
}

// Error carries a [Code], a message and an optional cause. It renders as
// "CODE: message" or "CODE: message: cause".
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Invalid is shorthand for New(ErrCodeInvalidInput, ...).
func Invalid(format string, args ...any) *Error {
	return New(ErrCodeInvalidInput, format, args...)
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// if there is none.
func GetCode(err error) Code {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsInvalidInput is shorthand for Is(err, ErrCodeInvalidInput).
func IsInvalidInput(err error) bool {
	return Is(err, ErrCodeInvalidInput)
}

// IsUserError reports whether err carries a code for which
// [Code.UserError] holds.
func IsUserError(err error) bool {
	return GetCode(err).UserError()
}
