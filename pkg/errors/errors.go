// Package errors provides the coded error type used across pkgactions.
//
// Every failure that reaches the user carries an ErrorCode so callers (and
// tests) can branch on the kind of failure without matching message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	// ErrConfigInvalid is raised for manifest entries that break a path rule,
	// such as an absolute path where a relative one is required.
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Manifest and package errors
	ErrManifestParse   ErrorCode = "MANIFEST_PARSE"
	ErrPackageNotFound ErrorCode = "PACKAGE_NOT_FOUND"
	ErrUnknownEvent    ErrorCode = "UNKNOWN_EVENT"

	// Action errors
	ErrUnknownAction ErrorCode = "UNKNOWN_ACTION"
	ErrActionInvalid ErrorCode = "ACTION_INVALID"
	// ErrMissingTarget means a symlink origin does not exist. It aborts the
	// remaining actions of the package.
	ErrMissingTarget ErrorCode = "MISSING_TARGET"

	// Path errors
	ErrNoCommonRoot ErrorCode = "NO_COMMON_ROOT"

	// FileSystem errors
	ErrFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileCopy      ErrorCode = "FILE_COPY"
	ErrFileRemove    ErrorCode = "FILE_REMOVE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
)

// PkgError represents a structured error with code and details
type PkgError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PkgError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PkgError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a PkgError with the same code
func (e *PkgError) Is(target error) bool {
	var targetErr *PkgError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PkgError with the given code and message
func New(code ErrorCode, message string) *PkgError {
	return &PkgError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PkgError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PkgError {
	return &PkgError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PkgError
func Wrap(err error, code ErrorCode, message string) *PkgError {
	if err == nil {
		return nil
	}
	return &PkgError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PkgError {
	if err == nil {
		return nil
	}
	return &PkgError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PkgError) WithDetail(key string, value interface{}) *PkgError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pkgErr *PkgError
	if errors.As(err, &pkgErr) {
		return pkgErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PkgError
func GetErrorCode(err error) ErrorCode {
	var pkgErr *PkgError
	if errors.As(err, &pkgErr) {
		return pkgErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PkgError
func GetErrorDetails(err error) map[string]interface{} {
	var pkgErr *PkgError
	if errors.As(err, &pkgErr) {
		return pkgErr.Details
	}
	return nil
}
