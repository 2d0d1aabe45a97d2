package constants

// Error codes used in API responses.
// These are the machine-readable codes returned in the "error" field.
const (
	// Common error codes
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInternalError  = "INTERNAL_ERROR"
	CodeUnauthorized   = "UNAUTHORIZED"

	// Shortener-specific codes
	CodeInvalidURL       = "INVALID_URL"
	CodeQuotaExceeded    = "QUOTA_EXCEEDED"
	CodeQuotaUnavailable = "QUOTA_UNAVAILABLE"

	// User codes
	CodeUserExists         = "USER_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Subscription package codes
	CodePackageNotFound = "PACKAGE_NOT_FOUND"
	CodeInvalidPackage  = "INVALID_PACKAGE"

	// Success codes
	CodeLinkCreated    = "LINK_CREATED"
	CodeQuotaFound     = "QUOTA_FOUND"
	CodeUserCreated    = "USER_CREATED"
	CodeLoginOK        = "LOGIN_OK"
	CodePackageCreated = "PACKAGE_CREATED"
	CodePackageUpdated = "PACKAGE_UPDATED"
	CodePackagesFound  = "PACKAGES_FOUND"
)
