// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

/*
Package apperr defines the centralized error handling framework for the
learning-center API.

It provides a rich error type that bridges the gap between low-level
domain/storage errors and high-level HTTP responses.

Architecture:

  - Error: A struct carrying an HTTP status code, a short client-facing
    message, and a list of detail entries with {key, value} context.
  - Mapping: Explicit mapping from Error to standard HTTP status codes.

Every error that leaves the service layer should be wrapped as an [Error] to
ensure consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Context identifies which input caused a failure and what value was seen.
type Context struct {
	// Key is the parameter or field name the failure relates to.
	Key string `json:"key"`
	// Value is the offending value as supplied by the caller (may be nil).
	Value any `json:"value"`
}

// Detail is a single human-readable failure entry with machine context.
type Detail struct {
	// Message describes the failure in client-safe terms.
	Message string `json:"message"`
	// Context pins the failure to a concrete input.
	Context Context `json:"context"`
}

// Error is the canonical error type for the API.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to
// clients to avoid leaking internal implementation details (e.g. SQL).
type Error struct {
	// StatusCode is the HTTP response status code.
	StatusCode int `json:"statusCode"`
	// Message is the short, stable headline (e.g. "Resource not found.").
	Message string `json:"message"`
	// Details holds the per-input failure entries.
	Details []Detail `json:"errors,omitempty"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *Error) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *Error) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [Error] for a resource referenced by an identifier.
//
// Example:
//
//	apperr.NotFound("Program", "programId", 42)
//	// detail: `Program with "programId" does not exist`
func NotFound(resource, key string, value any) *Error {
	return &Error{
		StatusCode: http.StatusNotFound,
		Message:    "Resource not found.",
		Details: []Detail{{
			Message: fmt.Sprintf("%s with %q does not exist", resource, key),
			Context: Context{Key: key, Value: value},
		}},
	}
}

// Conflict creates a 409 [Error] for duplicate or unique-constraint violations.
func Conflict(message, key string, value any) *Error {
	return &Error{
		StatusCode: http.StatusConflict,
		Message:    "Resource conflict.",
		Details: []Detail{{
			Message: message,
			Context: Context{Key: key, Value: value},
		}},
	}
}

// Forbidden creates the canonical 403 [Error] raised when a principal fails
// every configured authorization rule.
func Forbidden() *Error {
	return &Error{
		StatusCode: http.StatusForbidden,
		Message:    "Forbidden.",
		Details: []Detail{{
			Message: "You do not have the necessary permissions to access this resource.",
			Context: Context{Key: "role", Value: "User"},
		}},
	}
}

// Unauthorized creates a 401 [Error] for missing, invalid, or revoked tokens.
func Unauthorized(message, key string) *Error {
	return &Error{
		StatusCode: http.StatusUnauthorized,
		Message:    "Unauthorized.",
		Details: []Detail{{
			Message: message,
			Context: Context{Key: key},
		}},
	}
}

// Validation creates a 400 [Error] with per-input details.
func Validation(details ...Detail) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Message:    "Validation error.",
		Details:    details,
	}
}

// BadRequest creates a 400 [Error] with a single detail entry.
func BadRequest(message, key string, value any) *Error {
	return Validation(Detail{
		Message: message,
		Context: Context{Key: key, Value: value},
	})
}

// # Server Errors (5xx)

// Internal creates a 500 [Error] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *Error {
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Message:    "There is an issue with the server.",
		Cause:      cause,
	}
}

// # Helpers

// As extracts the [*Error] from err's chain. It returns nil if not found.
func As(err error) *Error {
	var appError *Error
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

// IsStatus reports whether err maps to the given HTTP status code.
func IsStatus(err error, statusCode int) bool {
	appError := As(err)
	return appError != nil && appError.StatusCode == statusCode
}
