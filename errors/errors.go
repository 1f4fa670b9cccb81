// Package errors defines the typed error taxonomy shared by all earnbase
// services. Every failure raised by this library is an *Error carrying a
// machine-readable code, an HTTP-equivalent status, and optional details,
// so callers can render a uniform error envelope.
package errors

import (
	stderrors "errors"
	"net/http"
)

// Error is the common error shape for all service failures.
type Error struct {
	Code    string
	Message string
	Status  int
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// WithDetails returns a copy of the error carrying the supplied details.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e == nil {
		return nil
	}
	copied := *e
	copied.Details = make(map[string]any, len(details))
	for k, v := range details {
		copied.Details[k] = v
	}
	return &copied
}

const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeAuthorization  = "AUTHORIZATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeInternal       = "INTERNAL_ERROR"
)

// Validation reports malformed input or a policy violation. Callers map it to
// a 400-equivalent outcome.
func Validation(message string) *Error {
	if message == "" {
		message = "Validation failed"
	}
	return &Error{Code: CodeValidation, Message: message, Status: http.StatusBadRequest}
}

// Authentication reports a failed credential check.
func Authentication(message string) *Error {
	if message == "" {
		message = "Authentication failed"
	}
	return &Error{Code: CodeAuthentication, Message: message, Status: http.StatusUnauthorized}
}

// Authorization reports a permission failure for an authenticated principal.
func Authorization(message string) *Error {
	if message == "" {
		message = "Permission denied"
	}
	return &Error{Code: CodeAuthorization, Message: message, Status: http.StatusForbidden}
}

// NotFound reports a missing resource.
func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{Code: CodeNotFound, Message: message, Status: http.StatusNotFound}
}

// Conflict reports a state conflict such as a duplicate resource.
func Conflict(message string) *Error {
	if message == "" {
		message = "Resource conflict"
	}
	return &Error{Code: CodeConflict, Message: message, Status: http.StatusConflict}
}

// Internal reports an unexpected server-side failure.
func Internal(message string) *Error {
	if message == "" {
		message = "Internal server error"
	}
	return &Error{Code: CodeInternal, Message: message, Status: http.StatusInternalServerError}
}

// As unwraps err into an *Error when possible.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	e, ok := As(err)
	return ok && e.Code == CodeValidation
}

// StatusOf returns the HTTP status associated with err, defaulting to 500
// for errors outside the taxonomy.
func StatusOf(err error) int {
	if e, ok := As(err); ok {
		return e.Status
	}
	return http.StatusInternalServerError
}
