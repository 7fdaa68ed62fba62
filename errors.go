package ppapi

import (
	"errors"
	"fmt"
)

// Result codes used across the host boundary. Zero is success, negative
// values are failures, and OKCompletionPending is the one reserved
// non-failure negative: the operation will complete asynchronously and the
// callback will be invoked by the host when it does.
const (
	OK                  int32 = 0
	OKCompletionPending int32 = -1 // Operation still pending, completes via callback

	ErrorFailed        int32 = -2  // Generic failure
	ErrorAborted       int32 = -3  // Operation aborted (e.g. owner destroyed)
	ErrorBadArgument   int32 = -4  // Invalid argument
	ErrorBadResource   int32 = -5  // Invalid or closed resource
	ErrorNoInterface   int32 = -6  // Interface not available
	ErrorNoAccess      int32 = -7  // Insufficient privileges
	ErrorNoMemory      int32 = -8  // Out of memory
	ErrorNoSpace       int32 = -9  // Out of storage space
	ErrorNoQuota       int32 = -10 // Quota exceeded
	ErrorInProgress    int32 = -11 // Operation already in progress
	ErrorNotSupported  int32 = -12 // Operation not supported
	ErrorFileNotFound  int32 = -20 // File does not exist
	ErrorFileExists    int32 = -21 // File already exists
	ErrorFileTooBig    int32 = -22 // File too large
	ErrorTimedOut      int32 = -30 // Operation timed out
	ErrorUserCancel    int32 = -40 // Canceled by the user
	ErrorContextLost   int32 = -50 // Output context invalidated
)

// Error represents a failed host operation.
// It carries the raw result code and the operation that produced it.
type Error struct {
	Code    int32  // Raw result code (always negative)
	Message string // Human-readable message
	Op      string // Operation that failed
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("ppapi %s: %s (code %d)", e.Op, e.Message, e.Code)
}

// NewError creates an Error from a result code.
// Returns nil for OK and OKCompletionPending, since neither is a failure.
func NewError(code int32, op string) error {
	if code >= OKCompletionPending {
		return nil
	}
	return &Error{
		Code:    code,
		Message: ErrorString(code),
		Op:      op,
	}
}

// ErrorString returns a human-readable description of a result code.
func ErrorString(code int32) string {
	switch code {
	case OK:
		return "ok"
	case OKCompletionPending:
		return "completion pending"
	case ErrorFailed:
		return "operation failed"
	case ErrorAborted:
		return "operation aborted"
	case ErrorBadArgument:
		return "bad argument"
	case ErrorBadResource:
		return "bad resource"
	case ErrorNoInterface:
		return "interface not available"
	case ErrorNoAccess:
		return "access denied"
	case ErrorNoMemory:
		return "out of memory"
	case ErrorNoSpace:
		return "out of space"
	case ErrorNoQuota:
		return "quota exceeded"
	case ErrorInProgress:
		return "operation in progress"
	case ErrorNotSupported:
		return "not supported"
	case ErrorFileNotFound:
		return "file not found"
	case ErrorFileExists:
		return "file exists"
	case ErrorFileTooBig:
		return "file too big"
	case ErrorTimedOut:
		return "timed out"
	case ErrorUserCancel:
		return "canceled by user"
	case ErrorContextLost:
		return "context lost"
	default:
		return "unknown error"
	}
}

// IsAborted returns true if the error carries the aborted result code.
func IsAborted(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == ErrorAborted
	}
	return false
}

// IsPending returns true if a result code means the operation will
// complete asynchronously through its callback.
func IsPending(code int32) bool {
	return code == OKCompletionPending
}

// Code returns the result code from an error, or 0 if err is not an Error.
func Code(err error) int32 {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return 0
}
