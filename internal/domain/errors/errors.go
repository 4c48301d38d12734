package errors

import (
	"net/http"

	"creatorkit/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// OAuth handshake errors
	ErrInvalidOAuthState = NewBaseError(
		http.StatusForbidden,
		"INVALID_OAUTH_STATE",
		"OAuth state mismatch",
		"",
	)

	ErrAuthorizationDenied = NewBaseError(
		http.StatusOK,
		"AUTHORIZATION_DENIED",
		"User declined platform authorization",
		"",
	)

	// Credential errors
	ErrVaultIntegrity = NewBaseError(
		http.StatusInternalServerError,
		"CREDENTIAL_INTEGRITY",
		"Stored credential failed integrity verification",
		"",
	)

	ErrNoCredential = NewBaseError(
		http.StatusNotFound,
		"NO_CREDENTIAL",
		"No access token stored for this account",
		"",
	)

	// Platform errors
	ErrUnsupportedPlatform = NewBaseError(
		http.StatusBadRequest,
		"PLATFORM_UNSUPPORTED",
		"Platform does not support this operation",
		"",
	)

	// Account errors
	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"Linked account not found",
		"",
	)

	ErrAccountNotConnected = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_CONNECTED",
		"Platform account is not connected",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)
)

// UpstreamKind distinguishes platform rejections from transport failures.
type UpstreamKind string

const (
	// UpstreamRejected covers 4xx answers carrying a platform error payload.
	UpstreamRejected UpstreamKind = "rejected"
	// UpstreamUnavailable covers network failures and 5xx answers; the item
	// is eligible for retry on the next scheduled run.
	UpstreamUnavailable UpstreamKind = "unavailable"
)

// UpstreamError represents a failed call to an external platform, implementing
// the AppError interface.
type UpstreamError struct {
	Kind       UpstreamKind
	Platform   string
	StatusCode int    // HTTP status from the platform, 0 for transport errors.
	Payload    string // Platform error payload, when one was returned.
	Err        error  // Underlying transport error, when one occurred.
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	if e.Payload != "" {
		return "platform " + e.Platform + " " + string(e.Kind) + ": " + e.Payload
	}
	if e.Err != nil {
		return "platform " + e.Platform + " " + string(e.Kind) + ": " + e.Err.Error()
	}

	return "platform " + e.Platform + " " + string(e.Kind)
}

// Unwrap exposes the underlying transport error.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// HTTPCode returns the HTTP status code
func (e *UpstreamError) HTTPCode() int {
	if e.Kind == UpstreamRejected {
		return http.StatusBadGateway
	}

	return http.StatusServiceUnavailable
}

// ErrorCode returns the business error code
func (e *UpstreamError) ErrorCode() string {
	if e.Kind == UpstreamRejected {
		return "PLATFORM_REJECTED"
	}

	return "PLATFORM_UNAVAILABLE"
}

// Message returns the user-friendly error message
func (e *UpstreamError) Message() string {
	if e.Kind == UpstreamRejected {
		return "Platform rejected the request"
	}

	return "Platform is temporarily unavailable"
}

// Details returns detailed error information
func (e *UpstreamError) Details() string {
	return e.Payload
}

// IsUpstreamRejected reports whether err is a platform 4xx rejection.
func IsUpstreamRejected(err error) bool {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Kind == UpstreamRejected
	}

	return false
}

// IsUpstreamUnavailable reports whether err is a transport/5xx failure.
func IsUpstreamUnavailable(err error) bool {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Kind == UpstreamUnavailable
	}

	return false
}
