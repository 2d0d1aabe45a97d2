package constants

// Error messages used in API responses.
// These are the human-readable messages returned in the "message" field.
const (
	// Common messages
	MsgInvalidRequestBody = "Invalid request body"
	MsgInternalError      = "An internal error occurred"
	MsgUnauthorized       = "Unauthorized"

	// Shortener-specific messages
	MsgInvalidURL       = "Invalid URL (must be http or https)"
	MsgQuotaExceeded    = "Daily link creation limit reached"
	MsgQuotaUnavailable = "Link creation is temporarily unavailable"

	// User messages
	MsgUserExists         = "User already exists in the system"
	MsgInvalidCredentials = "Invalid credentials"

	// Subscription package messages
	MsgPackageNotFound = "Subscription package not found"
	MsgInvalidPackage  = "Invalid subscription package"
)
