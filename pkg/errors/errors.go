// Package errors defines the coded errors barnframe returns at its input
// boundaries.
//
// Planning and space analysis are total functions and never fail. Errors
// come from decoding designs, loading configuration, talking to cache
// backends and serving HTTP. Each carries a [Code] so the CLI and the API
// can react without matching on message text.
//
// Codes are grouped by prefix:
//
//	INVALID_*   the caller supplied bad input
//	NOT_FOUND   a file or route does not exist
//	NETWORK_*   a remote cache backend misbehaved
//	INTERNAL_*  anything else
//
// Typical use:
//
//	if w <= 0 {
//	    return errors.New(errors.ErrCodeInvalidDimensions, "width must be positive (got %g)", w)
//	}
//
//	if err := rdb.Get(ctx, key).Err(); err != nil {
//	    return errors.Wrap(errors.ErrCodeNetwork, err, "redis get %s", key)
//	}
//
//	if errors.IsValidation(err) {
//	    // report 400
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a stable, machine-readable error class.
type Code string

const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidDimensions Code = "INVALID_DIMENSIONS"
	ErrCodeInvalidOpening    Code = "INVALID_OPENING"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Validation reports whether the code describes bad caller input.
func (c Code) Validation() bool {
	return strings.HasPrefix(string(c), "INVALID_")
}

// Error pairs a [Code] with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with the given code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is like New but records cause for errors.Is and errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether the first coded error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first coded error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix and cause from coded errors. Other
// errors are returned as text unchanged.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err carries an INVALID_* code.
func IsValidation(err error) bool {
	return GetCode(err).Validation()
}

// Join combines errs, dropping nils. It returns nil if nothing is left.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
