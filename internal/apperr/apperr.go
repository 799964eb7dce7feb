// Package apperr defines the tagged error kinds used across the service.
// Handlers select HTTP status codes by inspecting the kind rather than
// matching substrings in error text.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	// KindInternal is the default for unclassified failures.
	KindInternal Kind = iota
	// KindNotFound indicates the target row does not exist.
	KindNotFound
	// KindConflict indicates a uniqueness violation.
	KindConflict
	// KindReferential indicates a missing foreign-key target.
	KindReferential
	// KindBusinessRule indicates a domain rule rejected the request,
	// e.g. applying after a job's deadline.
	KindBusinessRule
)

// Error carries a kind alongside a caller-facing message and an optional
// wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound returns a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict returns a KindConflict error.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Referential returns a KindReferential error.
func Referential(format string, args ...any) *Error {
	return &Error{Kind: KindReferential, Message: fmt.Sprintf(format, args...)}
}

// BusinessRule returns a KindBusinessRule error.
func BusinessRule(format string, args ...any) *Error {
	return &Error{Kind: KindBusinessRule, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unclassified failure. The message is safe to show to a
// caller; err is logged server-side only.
func Internal(err error, message string) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the kind from err, returning KindInternal for anything
// that is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-facing message for err. Unclassified errors
// yield a generic message so internals never leak to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal server error"
}

// IsNotFound reports whether err carries KindNotFound.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsConflict reports whether err carries KindConflict.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
