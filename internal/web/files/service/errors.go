package service

import (
	"fmt"

	errors "github.com/Laisky/errors/v2"
)

// ErrorCode identifies a machine-stable storage error code.
type ErrorCode string

const (
	// ErrCodeNotFound means the path or id resolved to neither a file
	// nor a directory owned by the caller.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeLargeFile means the upload exceeded the configured byte
	// limit; partial writes are cleaned up before it is returned.
	ErrCodeLargeFile ErrorCode = "LARGE_FILE"
	// ErrCodeConflict means a caller-visible uniqueness conflict, e.g.
	// a duplicate username at registration. Expected races (directory
	// or revision already exists) are recovered internally and never
	// carry this code.
	ErrCodeConflict ErrorCode = "CONFLICT"
	// ErrCodeUnauthenticated means the request carried no valid identity.
	ErrCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	// ErrCodeInternal means an unclassified storage or filesystem failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error captures a typed storage error.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error returns the error message.
func (e *Error) Error() string {
	if e == nil {
		return "storage error: <nil>"
	}
	if e.Message == "" {
		return fmt.Sprintf("storage error: %s", e.Code)
	}
	return e.Message
}

// NewError constructs a typed storage error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// AsError extracts a typed storage error from the error chain.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed, true
	}
	return nil, false
}

// IsCode reports whether the error chain contains the given code.
func IsCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	if typed, ok := AsError(err); ok {
		return typed.Code == code
	}
	return false
}
