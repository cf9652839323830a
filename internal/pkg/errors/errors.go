package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with additional context
type AppError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	StatusCode int         `json:"-"`
	Internal   error       `json:"-"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

// Unwrap returns the internal error for errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Common error codes
const (
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodePersistence        = "PERSISTENCE_ERROR"
	ErrCodeFeatureLimit       = "FEATURE_LIMIT"
	ErrCodeInvalidOperation   = "INVALID_OPERATION"
	ErrCodeStorage            = "STORAGE_ERROR"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// FallbackMessage is shown to users when an error carries no message of its own.
const FallbackMessage = "Please try again."

// New creates a new AppError
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an error with an AppError
func Wrap(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Internal:   err,
	}
}

// WithDetails adds details to an AppError
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// Common error constructors

// Internal creates an internal server error
func Internal(message string, err error) *AppError {
	return Wrap(err, ErrCodeInternal, message, http.StatusInternalServerError)
}

// BadRequest creates a bad request error
func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message, http.StatusBadRequest)
}

// Unauthorized creates an unauthorized error
func Unauthorized(message string) *AppError {
	return New(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

// NotAuthenticated is returned by data operations invoked without a user in context.
func NotAuthenticated() *AppError {
	return Unauthorized("Not authenticated")
}

// Forbidden creates a forbidden error
func Forbidden(message string) *AppError {
	return New(ErrCodeForbidden, message, http.StatusForbidden)
}

// NotFound creates a not found error
func NotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// Conflict creates a conflict error
func Conflict(message string) *AppError {
	return New(ErrCodeConflict, message, http.StatusConflict)
}

// ValidationError creates a validation error
func ValidationError(message string, details interface{}) *AppError {
	return New(ErrCodeValidation, message, http.StatusBadRequest).WithDetails(details)
}

// PersistenceError wraps a store failure. The store's own message is kept
// as the user-facing message so callers can show it verbatim.
func PersistenceError(err error) *AppError {
	if appErr, ok := As(err); ok && appErr.Code == ErrCodePersistence {
		return appErr
	}
	msg := FallbackMessage
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Wrap(err, ErrCodePersistence, msg, http.StatusInternalServerError)
}

// DatabaseError creates a persistence error with a fixed message
func DatabaseError(message string, err error) *AppError {
	return Wrap(err, ErrCodePersistence, message, http.StatusInternalServerError)
}

// LimitDetails describes why a feature gate denied an operation.
type LimitDetails struct {
	Feature string `json:"feature"`
	Tier    string `json:"tier"`
	Limit   int64  `json:"limit"`
	Used    int64  `json:"used"`
}

// FeatureLimit creates an upgrade-prompt error for an exhausted tier quota
func FeatureLimit(d LimitDetails) *AppError {
	return New(ErrCodeFeatureLimit,
		fmt.Sprintf("You've reached your %s limit on the %s plan. Upgrade to continue.", d.Feature, d.Tier),
		http.StatusPaymentRequired).WithDetails(d)
}

// InvalidOperation creates an error for a request that conflicts with the
// current state of the resource.
func InvalidOperation(message string) *AppError {
	return New(ErrCodeInvalidOperation, message, http.StatusConflict)
}

// StorageError creates an object storage error
func StorageError(message string, err error) *AppError {
	return Wrap(err, ErrCodeStorage, message, http.StatusBadGateway)
}

// RateLimited creates a rate limited error
func RateLimited(message string) *AppError {
	return New(ErrCodeRateLimited, message, http.StatusTooManyRequests)
}

// ServiceUnavailable creates a service unavailable error
func ServiceUnavailable(message string) *AppError {
	return New(ErrCodeServiceUnavailable, message, http.StatusServiceUnavailable)
}

// As reports whether err is or wraps an *AppError and returns it.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an *AppError carrying code.
func HasCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// UserMessage returns the message to show for err, falling back to
// FallbackMessage when it has none.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := As(err); ok && appErr.Message != "" {
		return appErr.Message
	}
	if err.Error() != "" {
		return err.Error()
	}
	return FallbackMessage
}
