// Copyright (c) 2026 Smile. All rights reserved.

/*
Package apperr defines the centralized error handling framework for Smile.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing a machine-readable Code and a client-safe message.
  - Taxonomy: Constructors for every authentication and authorization failure
    category, each pinned to its canonical message and HTTP status.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"net/http"

	"github.com/smilehq/smile-api/internal/platform/constants"
)

// AppError is the canonical error type for the Smile API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional field->message map for validation failures.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "INVALID_TOKEN").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Fields holds per-field validation messages for VALIDATION_FAILED responses.
	Fields map[string]string `json:"fields,omitempty"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Identity & Credential Failures (401)
//
// UnknownIdentity and BadCredentials carry distinct codes for server-side
// diagnostics but deliberately share one client-visible message, so responses
// never disclose whether an account exists.

// UnknownIdentity creates a 401 [AppError] for a login identifier that
// matches no account.
func UnknownIdentity() *AppError {
	return &AppError{
		Code:       "UNKNOWN_IDENTITY",
		Message:    constants.MsgBadCredentials,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// BadCredentials creates a 401 [AppError] for a password mismatch.
func BadCredentials() *AppError {
	return &AppError{
		Code:       "BAD_CREDENTIALS",
		Message:    constants.MsgBadCredentials,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// AccountDisabled creates a 401 [AppError] for a disabled account.
func AccountDisabled() *AppError {
	return &AppError{
		Code:       "ACCOUNT_DISABLED",
		Message:    constants.MsgAccountDisabled,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// MissingCredentials creates a 401 [AppError] for an anonymous request to a
// route that requires authentication.
func MissingCredentials() *AppError {
	return &AppError{
		Code:       "MISSING_CREDENTIALS",
		Message:    constants.MsgMissingCredentials,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidToken creates a 401 [AppError] for any bearer-token verification
// failure. Malformed, expired, and tampered tokens all collapse into this one
// category so the response does not leak which check failed.
func InvalidToken() *AppError {
	return &AppError{
		Code:       "INVALID_TOKEN",
		Message:    constants.MsgInvalidToken,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// # Authorization Failures (403)

// InsufficientRole creates a 403 [AppError] for an authenticated principal
// lacking the role required by the matched authorization rule.
func InsufficientRole() *AppError {
	return &AppError{
		Code:       "INSUFFICIENT_ROLE",
		Message:    constants.MsgAccessDenied,
		HTTPStatus: http.StatusForbidden,
	}
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] with the given message.
//
// Example:
//
//	apperr.NotFound("Not found user with ID: 42")
func NotFound(msg string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    msg,
		HTTPStatus: http.StatusNotFound,
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationFailed creates a 400 [AppError] with an optional field->message map.
func ValidationFailed(msg string, fields map[string]string) *AppError {
	return &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Fields:     fields,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "A server internal error occurs",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsNotFound reports whether err is the NOT_FOUND category. Callers use it
// to tell "the row is absent" apart from infrastructure failures that must
// propagate instead of being masked.
func IsNotFound(err error) bool {
	ae := As(err)
	return ae != nil && ae.HTTPStatus == http.StatusNotFound
}
