package constants

import "net/http"

// APIError represents a standardized API error with code, message, and HTTP status.
// Use these predefined errors for consistent API responses across the application.
type APIError struct {
	Code    string
	Message string
	Status  int
}

// WithMessage returns a copy of the APIError with a custom message.
// Useful for validation errors or other dynamic messages.
func (e APIError) WithMessage(message string) APIError {
	return APIError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
	}
}

// Common errors - shared across multiple modules
var (
	ErrInvalidRequestBody = APIError{
		Code:    CodeInvalidRequest,
		Message: MsgInvalidRequestBody,
		Status:  http.StatusBadRequest,
	}
	ErrInternalError = APIError{
		Code:    CodeInternalError,
		Message: MsgInternalError,
		Status:  http.StatusInternalServerError,
	}
	ErrUnauthorized = APIError{
		Code:    CodeUnauthorized,
		Message: MsgUnauthorized,
		Status:  http.StatusUnauthorized,
	}
)

// Shortener-specific errors
var (
	ErrInvalidURL = APIError{
		Code:    CodeInvalidURL,
		Message: MsgInvalidURL,
		Status:  http.StatusBadRequest,
	}
	ErrQuotaExceeded = APIError{
		Code:    CodeQuotaExceeded,
		Message: MsgQuotaExceeded,
		Status:  http.StatusTooManyRequests,
	}
	ErrQuotaUnavailable = APIError{
		Code:    CodeQuotaUnavailable,
		Message: MsgQuotaUnavailable,
		Status:  http.StatusServiceUnavailable,
	}
)

// User errors
var (
	ErrUserExists = APIError{
		Code:    CodeUserExists,
		Message: MsgUserExists,
		Status:  http.StatusConflict,
	}
	ErrInvalidCredentials = APIError{
		Code:    CodeInvalidCredentials,
		Message: MsgInvalidCredentials,
		Status:  http.StatusUnauthorized,
	}
)

// Subscription package errors
var (
	ErrPackageNotFound = APIError{
		Code:    CodePackageNotFound,
		Message: MsgPackageNotFound,
		Status:  http.StatusNotFound,
	}
	ErrInvalidPackage = APIError{
		Code:    CodeInvalidPackage,
		Message: MsgInvalidPackage,
		Status:  http.StatusBadRequest,
	}
)
