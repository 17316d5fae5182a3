// Package domainerrors provides coded errors for the procurement platform.
//
// Services return these so transport layers can translate outcomes into HTTP
// responses without inspecting error strings. Stores return sentinel errors
// (pkg/platform/sentinel) and services wrap them with a code here.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for transport translation.
type Code string

const (
	// CodeValidation marks malformed or missing input. No side effect has
	// been performed when this is returned.
	CodeValidation Code = "validation_error"
	// CodeBadRequest marks an unparseable request (e.g. invalid JSON body).
	CodeBadRequest Code = "bad_request"
	// CodeConflict marks a duplicate-identity creation attempt.
	CodeConflict Code = "conflict"
	// CodeNotFound marks a referenced entity that does not exist.
	CodeNotFound Code = "not_found"
	// CodePartialFailure marks a multi-step workflow that partially
	// succeeded; callers must be able to tell this apart from a full failure.
	CodePartialFailure Code = "partial_failure"
	// CodeUpstream marks a failed or malformed response from a collaborator
	// service (catalog gateway, replication target).
	CodeUpstream Code = "upstream_error"
	// CodeInternal marks persistence or other infrastructure failures whose
	// detail must not leak to callers.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error, optionally wrapping a cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with no cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Is reports whether err is a coded domain error at all.
func Is(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// CodeOf extracts the code from err, defaulting to CodeInternal for uncoded
// errors so infrastructure failures never leak detail by accident.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf extracts the caller-safe message from err. Uncoded errors yield
// an empty message.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
