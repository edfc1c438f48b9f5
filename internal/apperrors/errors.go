// Package apperrors defines the error taxonomy shared by all services.
// Services return *Error values; only the HTTP boundary translates them
// into status codes and response bodies.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error category on the wire.
type Code string

const (
	CodeValidationFailed       Code = "VALIDATION_FAILED"
	CodePermissionDenied       Code = "PERMISSION_DENIED"
	CodeNotFound               Code = "NOT_FOUND"
	CodeInvalidTransition      Code = "INVALID_TRANSITION"
	CodeAuthenticationRequired Code = "AUTHENTICATION_REQUIRED"
)

// Error is the single error type crossing service boundaries.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	// Field names the offending input field for validation failures.
	Field string `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validation reports malformed or missing input.
func Validation(field, message string) *Error {
	return &Error{Code: CodeValidationFailed, Message: message, Field: field}
}

// Permission reports an authenticated caller acting outside its role.
func Permission(message string) *Error {
	return &Error{Code: CodePermissionDenied, Message: message}
}

// NotFound reports a missing record.
func NotFound(resource string) *Error {
	return &Error{Code: CodeNotFound, Message: resource + " not found"}
}

// InvalidTransition reports a status change the workflow does not allow.
func InvalidTransition(message string) *Error {
	return &Error{Code: CodeInvalidTransition, Message: message}
}

// Authentication reports a request with no usable identity.
func Authentication(message string) *Error {
	return &Error{Code: CodeAuthenticationRequired, Message: message}
}

// From unwraps err into an *Error if it carries one.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HTTPStatus maps an error to the response status the boundary should emit.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	appErr, ok := From(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidationFailed:
		return http.StatusBadRequest
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidTransition:
		return http.StatusBadRequest
	case CodeAuthenticationRequired:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
