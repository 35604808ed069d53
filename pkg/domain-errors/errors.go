package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error so transport layers can map it to a
// response without inspecting error strings.
type Code string

const (
	// CodeBadRequest marks caller mistakes (missing or blank parameters).
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks an empty result set. Expected, not a fault.
	CodeNotFound Code = "not_found"
	// CodeUpstreamUnavailable marks a failed or unparseable response from
	// the external open-data API.
	CodeUpstreamUnavailable Code = "upstream_unavailable"
	// CodeStorageFailure marks a read or write failure against the store.
	CodeStorageFailure Code = "storage_failure"
	// CodeInternal is the fallback for everything else.
	CodeInternal Code = "internal"
)

// Error is a coded domain error. The Message is safe to return to API
// callers; the wrapped cause is for logs only.
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

// New creates a coded error with a caller-facing message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the caller-facing message from err. Uncoded errors
// get a generic message so internals never leak to API responses.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal server error"
}

// HTTPStatus maps a code to its HTTP status.
func HTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUpstreamUnavailable, CodeStorageFailure, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
