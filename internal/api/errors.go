package api

import (
	"errors"
	"fmt"
	"sort"
)

// Error is the structured error returned by the backend client.
type Error struct {
	Code    string            // Machine-readable error code
	Message string            // Human-readable message
	Details map[string]string // Additional context
	Cause   error             // Underlying error
}

func (e *Error) Error() string {
	msg := e.Message

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on Code so that copies made by WithDetails still satisfy
// errors.Is against the sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrRequestFailed = &Error{
		Code:    "REQUEST_FAILED",
		Message: "request to leaderboard backend failed",
	}

	ErrUnexpectedStatus = &Error{
		Code:    "UNEXPECTED_STATUS",
		Message: "leaderboard backend returned a non-2xx status",
	}

	ErrDecode = &Error{
		Code:    "DECODE_FAILED",
		Message: "could not decode leaderboard backend response",
	}

	ErrNotFound = &Error{
		Code:    "NOT_FOUND",
		Message: "trader not found",
	}

	ErrRateLimited = &Error{
		Code:    "RATE_LIMITED",
		Message: "leaderboard backend rate limit exceeded",
	}

	ErrInvalidBaseURL = &Error{
		Code:    "INVALID_BASE_URL",
		Message: "invalid backend base URL",
	}
)

// WithDetails returns a copy of err with the given details merged in.
// Non-*Error values are returned unchanged.
func WithDetails(err error, details map[string]string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	merged := make(map[string]string, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: merged,
		Cause:   e.Cause,
	}
}

// Wrap returns a copy of the sentinel err with cause attached.
func Wrap(err *Error, cause error) error {
	return &Error{
		Code:    err.Code,
		Message: err.Message,
		Details: err.Details,
		Cause:   cause,
	}
}
